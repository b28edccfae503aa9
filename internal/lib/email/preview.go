package email

// PreviewData holds sample values for rendering each template locally,
// keyed by template name and then by template variable.
var PreviewData = map[Template]map[string]string{
	TemplateProductCreated: {
		"ProductID":    "42",
		"ProductName":  "Chicken Waffle",
		"ProductPrice": "12.99",
	},
}
