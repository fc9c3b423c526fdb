package mailer

import (
	"bytes"
	"html/template"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ReportRow is one line of the sales report email.
type ReportRow struct {
	Date     string          `json:"date"`
	Item     string          `json:"item"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Total returns price multiplied by quantity.
func (r ReportRow) Total() decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// StockAlert is one low-stock entry of the inventory alert email.
type StockAlert struct {
	ItemName        string `json:"itemName"`
	CurrentQuantity int    `json:"currentQuantity"`
	Threshold       int    `json:"threshold"`
	Category        string `json:"category"`
}

// StatusText classifies the alert entry the way the alert table shows it.
func (a StockAlert) StatusText() string {
	switch {
	case a.CurrentQuantity == 0:
		return "OUT OF STOCK"
	case a.CurrentQuantity <= a.Threshold:
		return "LOW STOCK"
	default:
		return "IN STOCK"
	}
}

var reportTemplate = template.Must(template.New("sales_report").Parse(`
<h2>Sales Report</h2>
<table border="1" style="border-collapse: collapse; width: 100%;">
  <tr>
    <th style="padding: 8px;">Date</th>
    <th style="padding: 8px;">Item</th>
    <th style="padding: 8px;">Price</th>
    <th style="padding: 8px;">Quantity</th>
    <th style="padding: 8px;">Total</th>
  </tr>
{{- range .Rows}}
  <tr>
    <td style="padding: 8px;">{{.Date}}</td>
    <td style="padding: 8px;">{{.Item}}</td>
    <td style="padding: 8px;">KES {{.Price}}</td>
    <td style="padding: 8px;">{{.Quantity}}</td>
    <td style="padding: 8px;">KES {{.Total}}</td>
  </tr>
{{- end}}
</table>
<p><strong>Total Revenue: KES {{.Total}}</strong></p>
`))

var alertTemplate = template.Must(template.New("inventory_alert").Parse(`
<div style="max-width: 600px; margin: 0 auto; padding: 20px; font-family: Arial, sans-serif;">
  <div style="background: #b91c1c; color: white; padding: 20px; text-align: center;">
    <h1>Inventory Alert</h1>
    <p>Low Stock Items Detected</p>
  </div>
  <div style="padding: 20px; background: #f9fafb;">
    <p>The following items require your attention due to low stock levels:</p>
    <table style="width: 100%; border-collapse: collapse;">
      <thead>
        <tr>
          <th style="padding: 12px; text-align: left;">Item Name</th>
          <th style="padding: 12px; text-align: left;">Current Quantity</th>
          <th style="padding: 12px; text-align: left;">Threshold</th>
          <th style="padding: 12px; text-align: left;">Status</th>
          <th style="padding: 12px; text-align: left;">Category</th>
        </tr>
      </thead>
      <tbody>
{{- range .Alerts}}
        <tr>
          <td style="padding: 12px;">{{.ItemName}}</td>
          <td style="padding: 12px;">{{.CurrentQuantity}}</td>
          <td style="padding: 12px;">{{.Threshold}}</td>
          <td style="padding: 12px;">{{.StatusText}}</td>
          <td style="padding: 12px;">{{if .Category}}{{.Category}}{{else}}N/A{{end}}</td>
        </tr>
{{- end}}
      </tbody>
    </table>
    <h3>Recommended Actions:</h3>
    <ul>
      <li>Review items marked as "OUT OF STOCK" and restock immediately</li>
      <li>Plan restocking for items marked as "LOW STOCK"</li>
      <li>Update inventory records after restocking</li>
    </ul>
  </div>
  <div style="text-align: center; padding: 20px; color: #6b7280; font-size: 12px;">
    <p>This alert was generated by CyberSmarter Business Management System</p>
    <p>Generated on {{.GeneratedAt}}</p>
  </div>
</div>
`))

// RenderSalesReport builds the HTML body of a sales report email.
func RenderSalesReport(rows []ReportRow) (string, error) {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Total())
	}
	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, struct {
		Rows  []ReportRow
		Total decimal.Decimal
	}{rows, total})
	if err != nil {
		return "", errors.Wrap(err, "render sales report")
	}
	return buf.String(), nil
}

// RenderInventoryAlert builds the HTML body of a low-stock alert email.
func RenderInventoryAlert(alerts []StockAlert) (string, error) {
	var buf bytes.Buffer
	err := alertTemplate.Execute(&buf, struct {
		Alerts      []StockAlert
		GeneratedAt string
	}{alerts, time.Now().Format("2006-01-02 15:04:05")})
	if err != nil {
		return "", errors.Wrap(err, "render inventory alert")
	}
	return buf.String(), nil
}
