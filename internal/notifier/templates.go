package notifier

import "fmt"

// Email bodies mirror the notification texts the frontend already expects.

// ReleaseEmailData carries the fields for the release notification email.
type ReleaseEmailData struct {
	Item          string
	ReleasedTo    string
	Quantity      int
	MeasuringUnit string
	ReleasedBy    string
	Category      string
	Reason        string
}

// ItemReleasedHTML renders the release notification body.
func ItemReleasedHTML(d ReleaseEmailData) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2>Item Release Notification</h2>
  <p>An item has been released from inventory:</p>
  <ul>
    <li><strong>Item:</strong> %s</li>
    <li><strong>Released To:</strong> %s</li>
    <li><strong>Quantity:</strong> %d %s(s)</li>
    <li><strong>Released By:</strong> %s</li>
    <li><strong>Category:</strong> %s</li>
    <li><strong>Reason:</strong> %s</li>
  </ul>
  <p>Please confirm receipt and ensure proper handling.</p>
  <p style="font-size: 0.9em; color: #666;">This is an automated email from the Inventory Management System.</p>
</div>`, d.Item, d.ReleasedTo, d.Quantity, d.MeasuringUnit, d.ReleasedBy, d.Category, d.Reason)
}

// ReturnEmailData carries the fields for the return confirmation email.
type ReturnEmailData struct {
	Item        string
	ReturnedBy  string
	Quantity    int
	Condition   string
	Remarks     string
	ProcessedBy string
}

// ItemReturnedHTML renders the return confirmation body.
func ItemReturnedHTML(d ReturnEmailData) string {
	remarks := d.Remarks
	if remarks == "" {
		remarks = "None"
	}
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2>Item Return Confirmation</h2>
  <p>The following item has been successfully returned:</p>
  <ul>
    <li><strong>Item:</strong> %s</li>
    <li><strong>Returned By:</strong> %s</li>
    <li><strong>Quantity Returned:</strong> %d</li>
    <li><strong>Condition:</strong> %s</li>
    <li><strong>Remarks:</strong> %s</li>
    <li><strong>Processed By:</strong> %s</li>
    <li><strong>Status:</strong> Return recorded</li>
  </ul>
  <p>Thank you for maintaining proper item accountability.</p>
  <p style="font-size: 0.9em; color: #666;">This is an automated email from the Inventory Management System.</p>
</div>`, d.Item, d.ReturnedBy, d.Quantity, d.Condition, remarks, d.ProcessedBy)
}

// LowStockHTML renders the low-stock alert body.
func LowStockHTML(item, category string, quantity, threshold int) string {
	return fmt.Sprintf(`<h2>Low Stock Alert</h2>
<p><strong>%s</strong> (%s) is running low.</p>
<p>Quantity left: <b>%d</b> (Threshold: %d)</p>
<p>Please review and restock soon.</p>`, item, category, quantity, threshold)
}

// RestockHTML renders the restock recovery body.
func RestockHTML(item, category string, quantity int, restocker string) string {
	return fmt.Sprintf(`<h2>Restocked Notification</h2>
<p><strong>%s</strong> (%s) has been replenished.</p>
<p>Restocked by: <b>%s</b></p>
<p>Current stock: <b>%d</b></p>
<p>All systems back to normal.</p>`, item, category, restocker, quantity)
}
