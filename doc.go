// Package uval wires unobtrusive validation markup to client-side validation
// plugins.
//
// Forms declare their rules with data-val-* attributes. A Validation parses
// them into neutral configuration (package parser) and hands it to the
// selected adaptor, which writes the plugin's native configuration back into
// the document:
//
//	plugin := jqueryvalidation.NewAttributePlugin(jqueryvalidation.WithAdditionalMethods())
//	jq, err := jqueryvalidation.New(plugin)
//	if err != nil {
//		return err
//	}
//
//	v := uval.New(
//		uval.WithLogger(log),
//		uval.WithAdaptor(jqueryvalidation.Name, jq),
//		uval.WithSelected(jqueryvalidation.Name),
//	)
//
//	// rewrite a whole page
//	err = v.SetupHTML(ctx, r, w)
//
// Setup is idempotent: adaptors clear what a previous run attached before
// writing the new configuration, so pages can be processed again after
// their markup changes.
//
// When no adaptor is selected, or the selected id has no adaptor attached,
// setup leaves forms untouched.
package uval
