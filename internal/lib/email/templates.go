package email

// Template names an email template under templates/.
type Template string

const (
	// TemplateProductCreated corresponds to templates/product_created.html.
	TemplateProductCreated Template = "product_created"
)
