package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"kplat_back_end/internal/models"
)

func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From("noreply@kplat.app"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("receipt_kplat.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, line := range order.Lines {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 10px; border: 1px solid #ddd;">$%.2f</td>
				<td style="padding: 10px; border: 1px solid #ddd;">$%.2f</td>
			</tr>`, line.Name, line.Quantity, line.UnitPrice, line.UnitPrice*float64(line.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Order Confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your order!</h2>
		<p>Hi %s,</p>
		<p>Your order <strong>%s</strong> has been confirmed and the restaurant is preparing it.</p>

		<h3>Order details</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Subtotal:</td>
					<td style="padding: 10px;">$%.2f</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Tax:</td>
					<td style="padding: 10px;">$%.2f</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Delivery fee:</td>
					<td style="padding: 10px;">$%.2f</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">$%.2f</td>
				</tr>
			</tfoot>
		</table>

		<p>Estimated delivery: <strong>%s</strong></p>
		<p>Delivery address: %s, %s %s</p>

		<p style="margin-top: 30px; color: #555;">
			Bon appétit,<br>
			<strong>The Kplat team</strong>
		</p>
	</div>
</body>
</html>`,
		order.Customer.Name,
		order.Number,
		itemsHTML,
		order.Summary.Subtotal,
		order.Summary.Tax,
		order.Summary.DeliveryFee,
		order.Summary.GrandTotal,
		order.EstimatedDelivery.Format("3:04 PM"),
		order.Delivery.Address,
		order.Delivery.City,
		order.Delivery.PostalCode,
	)
}
