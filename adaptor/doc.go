// Package adaptor defines the contract between the neutral rule configuration
// produced by package parser and the plugin-specific adaptors.
//
// An Adaptor receives a form and its parser.FormConfig and activates its target
// validation plugin with a configuration in that plugin's own vocabulary.
// Adaptors are built from two tables:
//
//   - a NameTable renaming neutral rules (regex -> pattern), identity when unmapped;
//   - a MapperTable turning neutral parameters into the value the plugin expects.
//
// MapperTable entries are tagged: Direct holds a ParameterMapper, Alias names
// another entry of the same table. Resolution follows one alias hop and falls
// back to the table's designated default entry when the rule or the alias
// target is missing. An alias pointing at another alias is reported as
// ErrAliasChain.
//
//	table := adaptor.NewMapperTable("__default", map[string]adaptor.MapperEntry{
//	    "__default":     adaptor.Direct(adaptor.Default),
//	    "__singleValue": adaptor.Direct(adaptor.SingleValue),
//	    "maxlength":     adaptor.Alias("__singleValue"),
//	})
//
// # Canonical mappers
//
//   - Default: true for rules without parameters, the parameters otherwise.
//   - SingleValue: the only parameter value; ErrConfiguration for zero or many.
//   - MinMax: []any{min, max}; ErrConfiguration when both are missing.
//   - Passthrough: the parameters unchanged.
//
// Mapper errors wrap ErrConfiguration and abort the whole setup run.
package adaptor
