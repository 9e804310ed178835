// Package middleware provides HTTP middleware that runs validation setup on
// every HTML page a handler serves.
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.Use(middleware.Setup(v, middleware.WithLogger(log)))
//	r.Handle("/*", http.FileServer(http.Dir("public")))
//
// Setup buffers text/html responses, rewrites their forms through
// uval.Validation.SetupHTML and fixes Content-Length. Other responses are
// streamed unchanged. When setup fails the original page is served and the
// error is logged.
package middleware
