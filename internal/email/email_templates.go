package email

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
)

const quoteRequired = "Quote Required"

var currencySymbols = map[string]string{
	"IDR": "Rp",
	"INR": "₹",
	"USD": "$",
}

func formatMoney(currency string, amount decimal.Decimal) string {
	sym, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		sym = strings.ToUpper(currency) + " "
	}
	return sym + amount.StringFixed(2)
}

var funcs = template.FuncMap{
	"unitPrice": func(currency string, it OrderEmailItem) string {
		if it.Price == nil {
			return quoteRequired
		}
		return formatMoney(currency, *it.Price)
	},
	"subtotal": func(currency string, it OrderEmailItem) string {
		if it.Price == nil {
			return quoteRequired
		}
		return formatMoney(currency, it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	},
	"total": func(currency string, total decimal.Decimal) string {
		if !total.IsPositive() {
			return quoteRequired
		}
		return formatMoney(currency, total)
	},
	"orNotProvided": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "Not provided"
		}
		return s
	},
	"lines": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
}

const layoutOpen = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 5px;">
<div style="text-align: center; padding-bottom: 20px; border-bottom: 2px solid #800020;">
<h1 style="color: #800020; margin: 0;">{{.Heading}}</h1>
</div>`

const layoutClose = `<div style="padding: 20px 0; border-top: 1px solid #e0e0e0; text-align: center; color: #666;">
<p>{{.Footer}}</p>
</div>
</div>`

var orderTmpl = template.Must(template.New("order").Funcs(funcs).Parse(
	`{{define "head"}}` + layoutOpen + `{{end}}{{define "foot"}}` + layoutClose + `{{end}}` +
		`{{template "head" .}}
{{with .Order}}
<div style="padding: 20px 0;">
<h2 style="color: #333;">Order Information</h2>
<p><strong>Order ID:</strong> {{.OrderNumber}}</p>
<p><strong>Date:</strong> {{.PlacedAt.Format "02 Jan 2006"}}</p>
<p><strong>Total Amount:</strong> {{total .Currency .Total}}</p>
</div>
<div style="padding: 20px 0; border-top: 1px solid #e0e0e0;">
<h2 style="color: #333;">Customer Information</h2>
<p><strong>Name:</strong> {{.Customer.Name}}</p>
<p><strong>Email:</strong> {{.Customer.Email}}</p>
<p><strong>Phone:</strong> {{orNotProvided .Customer.Phone}}</p>
</div>
<div style="padding: 20px 0; border-top: 1px solid #e0e0e0;">
<h2 style="color: #333;">Order Items</h2>
<table style="width: 100%; border-collapse: collapse; margin-top: 10px;">
<thead><tr style="background-color: #f2f2f2;">
<th style="padding: 10px; border: 1px solid #ddd; text-align: left;">Item</th>
<th style="padding: 10px; border: 1px solid #ddd; text-align: left;">Service ID</th>
<th style="padding: 10px; border: 1px solid #ddd; text-align: left;">Quantity</th>
<th style="padding: 10px; border: 1px solid #ddd; text-align: left;">Unit Price</th>
<th style="padding: 10px; border: 1px solid #ddd; text-align: left;">Subtotal</th>
</tr></thead>
<tbody>
{{$cur := .Currency}}{{range .Items}}<tr>
<td style="padding: 8px; border: 1px solid #ddd;">{{.Title}}</td>
<td style="padding: 8px; border: 1px solid #ddd;">{{.ServiceID}}</td>
<td style="padding: 8px; border: 1px solid #ddd;">{{.Quantity}}</td>
<td style="padding: 8px; border: 1px solid #ddd;">{{unitPrice $cur .}}</td>
<td style="padding: 8px; border: 1px solid #ddd;">{{subtotal $cur .}}</td>
</tr>
{{end}}</tbody>
</table>
</div>
{{end}}
{{template "foot" .}}`))

var contactTmpl = template.Must(template.New("contact").Funcs(funcs).Parse(
	`{{define "head"}}` + layoutOpen + `{{end}}{{define "foot"}}` + layoutClose + `{{end}}` +
		`{{template "head" .}}
{{with .Contact}}
<div style="padding: 20px 0;">
<h2 style="color: #333;">Contact Information</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{orNotProvided .Phone}}</p>
<p><strong>Date:</strong> {{.SentAt.Format "02 Jan 2006"}}</p>
<p><strong>Time:</strong> {{.SentAt.Format "15:04:05"}}</p>
</div>
<div style="padding: 20px 0; border-top: 1px solid #e0e0e0;">
<h2 style="color: #333;">Message</h2>
<div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin-top: 10px;">
<p>{{range $i, $l := lines .Message}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
</div>
</div>
{{end}}
{{template "foot" .}}`))

var designTmpl = template.Must(template.New("design").Funcs(funcs).Parse(
	`{{define "head"}}` + layoutOpen + `{{end}}{{define "foot"}}` + layoutClose + `{{end}}` +
		`{{template "head" .}}
{{with .Design}}
<div style="padding: 20px 0;">
<h2 style="color: #333;">Request Details</h2>
<p><strong>Service:</strong> {{.ServiceTitle}} ({{.ServiceID}})</p>
<p><strong>Contact:</strong> {{.ContactInfo}}</p>
<p><strong>Submitted by:</strong> {{orNotProvided .SubmittedBy}}</p>
<p><strong>Date:</strong> {{.SubmittedAt.Format "02 Jan 2006 15:04"}}</p>
</div>
<div style="padding: 20px 0; border-top: 1px solid #e0e0e0;">
<h2 style="color: #333;">Design Files</h2>
<ul>{{range .Files}}<li><a href="{{.URL}}">{{.Name}}</a></li>{{end}}</ul>
</div>
{{if .Notes}}<div style="padding: 20px 0; border-top: 1px solid #e0e0e0;">
<h2 style="color: #333;">Additional Notes</h2>
<p>{{range $i, $l := lines .Notes}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
</div>{{end}}
{{end}}
{{template "foot" .}}`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
