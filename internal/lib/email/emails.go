package email

import "strconv"

// SendProductCreatedEmail tells the catalog owner that a product went live.
func (c *Client) SendProductCreatedEmail(to string, productID int64, name, price string) error {
	data := map[string]string{
		"ProductID":    strconv.FormatInt(productID, 10),
		"ProductName":  name,
		"ProductPrice": price,
	}

	return c.SendEmail(
		to,
		"New product listed: "+name,
		TemplateProductCreated,
		data,
	)
}
