// Package jqueryvalidation adapts neutral rule configuration to the jQuery
// Validation Plugin (https://jqueryvalidation.org).
//
// Rules are translated in two ways. Most go through a name table and a
// parameter mapper table:
//
//	regex     -> pattern    single value ("^[A-Z]+$")
//	length    -> maxlength  single value ("10")
//	phone     -> phoneUS    true
//	required  -> required   true
//	rangelength             [min, max]
//
// Rules whose shape does not fit one renamed value use complex mappers that
// write plugin rule slots directly:
//
//	extension -> accept     "png, jpg" becomes "png|jpg"
//	range     -> min, max   both slots carry the range message
//	equalto   -> equalTo    reference to the other control of the form
//
// The target plugin is consumed through the Plugin interface. Two
// implementations write into the parsed document: AttributePlugin stores the
// options as JSON in a form attribute, ScriptPlugin places an activation
// script after the form.
//
//	plugin := jqueryvalidation.NewAttributePlugin(jqueryvalidation.WithAdditionalMethods())
//	a, err := jqueryvalidation.New(plugin, jqueryvalidation.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	v := uval.New(uval.WithAdaptor(jqueryvalidation.Name, a))
//	v.SetAdaptor(jqueryvalidation.Name)
package jqueryvalidation
