package adaptor

import "errors"

var (
	// ErrConfiguration is returned when a rule's parameters do not have the
	// shape its mapper expects. Proceeding would produce a plugin rule that
	// validates the wrong thing, so setup stops.
	ErrConfiguration = errors.New("invalid rule configuration")

	// ErrAliasChain is returned when a mapper alias points at another alias.
	ErrAliasChain = errors.New("mapper alias resolves to another alias")

	// ErrUnknownMapper is returned when neither the rule, its alias target nor
	// the table fallback resolve to a mapper function.
	ErrUnknownMapper = errors.New("no mapper found")

	// ErrPluginNotLoaded is returned by adaptor constructors given no target plugin.
	ErrPluginNotLoaded = errors.New("validation plugin not loaded")

	// ErrInvalidRuleName is returned when registering a rule without a name.
	ErrInvalidRuleName = errors.New("rule name must not be empty")
)
