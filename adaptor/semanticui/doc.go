// Package semanticui adapts neutral rule configuration to the Semantic UI form
// behaviour (https://semantic-ui.com/behaviors/form.html).
//
// Every neutral rule becomes one entry of the field's rules list. The type
// string carries the parameters the way Semantic UI expects them:
//
//	required  -> empty
//	range     -> integer[18..65]
//	length    -> exactLength[5]
//	minlength -> minLength[2]
//	maxlength -> maxLength[10]
//	regex     -> regExp[/^[A-Z]+$/]
//	equalto   -> match[Password]
//
// Rules without a mapping keep their name as type. The rule message becomes the
// prompt.
package semanticui
