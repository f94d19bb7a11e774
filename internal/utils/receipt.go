package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"

	"kplat_back_end/internal/models"
)

// GenerateOrderQR génère un QR de suivi de commande en base64,
// prêt à mettre dans <img src="...">
func GenerateOrderQR(orderID string) (string, error) {
	trackURL := fmt.Sprintf("%s/orders/%s", GetStorefrontBaseURL(), orderID)

	png, err := qrcode.Encode(trackURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderReceiptPDF imprime le reçu HTML en PDF via Chrome headless.
// Le HTML est passé en data: URL, pas besoin du front pour générer le reçu.
func RenderReceiptPDF(order models.Order, qrBase64 string) ([]byte, error) {
	html := generateReceiptHTML(order, qrBase64)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

func generateReceiptHTML(order models.Order, qrBase64 string) string {
	itemsHTML := ""
	for _, line := range order.Lines {
		itemsHTML += fmt.Sprintf(`<tr><td>%s</td><td>%d</td><td>$%.2f</td></tr>`,
			line.Name, line.Quantity, line.UnitPrice*float64(line.Quantity))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Receipt %s</title></head>
<body style="font-family: Arial, sans-serif;">
	<h1>Kplat</h1>
	<h2>Receipt — Order %s</h2>
	<p>%s</p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>Item</th><th>Qty</th><th>Total</th></tr>
		%s
		<tr><td colspan="2">Subtotal</td><td>$%.2f</td></tr>
		<tr><td colspan="2">Tax</td><td>$%.2f</td></tr>
		<tr><td colspan="2">Delivery fee</td><td>$%.2f</td></tr>
		<tr><td colspan="2"><strong>Total</strong></td><td><strong>$%.2f</strong></td></tr>
	</table>
	<p><img src="%s" alt="order QR" width="160" height="160"></p>
</body>
</html>`,
		order.Number,
		order.Number,
		order.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
		itemsHTML,
		order.Summary.Subtotal,
		order.Summary.Tax,
		order.Summary.DeliveryFee,
		order.Summary.GrandTotal,
		qrBase64,
	)
}

// Helper: récupère l'URL du front depuis l'env
func GetStorefrontBaseURL() string {
	u := os.Getenv("STOREFRONT_URL")
	if u == "" {
		// fallback local dev
		return "http://localhost:3000"
	}
	return u
}
