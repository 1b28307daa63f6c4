package inquiry

import (
	"fmt"
	"html/template"
	"strings"
)

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// symbolFor falls back to EUR for items that arrive without a currency code,
// matching the storefront's display default.
func symbolFor(code string) string {
	if code == "" {
		return currencySymbols["EUR"]
	}
	if sym, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return sym
	}
	return code + " "
}

var cartInquiryTmpl = template.Must(template.New("cart_inquiry").Funcs(template.FuncMap{
	"symbol": symbolFor,
}).Parse(`<h2>New Cart Inquiry</h2>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Message:</strong> {{.Message}}</p>
<h3>Cart Summary:</h3>
<ul>
{{- range .Items}}
  <li><strong>{{.ProductTitle}}</strong> ({{.VariantTitle}}) - Quantity: {{.Quantity}}, Price: {{symbol .CurrencyCode}}{{.Price}}</li>
{{- end}}
</ul>
`))

func renderCartInquiryHTML(in CartInquiry) (string, error) {
	var b strings.Builder
	if err := cartInquiryTmpl.Execute(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}

func cartInquirySubject(email string) string {
	return fmt.Sprintf("New Cart Inquiry from %s", email)
}

func contactSubject(name, email string) string {
	return fmt.Sprintf("Message from %s (%s)", name, email)
}

func renderContactText(in ContactMessage) string {
	var b strings.Builder
	b.WriteString("You have a new message from:\n")
	fmt.Fprintf(&b, "Name: %s\n", in.Name)
	fmt.Fprintf(&b, "Email: %s\n", in.Email)
	fmt.Fprintf(&b, "Message: %s\n", in.Message)
	return b.String()
}
