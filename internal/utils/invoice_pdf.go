package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"rughaven_back_end/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateUPIQR builds a UPI payment QR as a base64 data URL, ready for an
// <img src="..."> in the invoice page.
func GenerateUPIQR(payeeVPA, payeeName, ref string, amount float64) (string, error) {
	q := url.Values{}
	q.Set("pa", payeeVPA)
	q.Set("pn", payeeName)
	q.Set("am", fmt.Sprintf("%.2f", amount))
	q.Set("cu", "INR")
	q.Set("tn", ref)
	upi := "upi://pay?" + q.Encode()

	png, err := qrcode.Encode(upi, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderInvoicePDF loads the frontend invoice page in headless Chrome and
// prints it to PDF. frontendURL looks like http://localhost:3000/invoice.
func RenderInvoicePDF(frontendURL, orderID, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", orderID)
	q.Set("qr", qrBase64)
	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
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

// GenerateInvoicePDF renders the invoice for an order, embedding the UPI QR.
func GenerateInvoicePDF(order models.Order) ([]byte, error) {
	vpa := os.Getenv("UPI_VPA")
	if vpa == "" {
		vpa = "rughaven@upi"
	}
	payee := os.Getenv("UPI_PAYEE_NAME")
	if payee == "" {
		payee = "Rughaven"
	}

	ref := fmt.Sprintf("ORD-%s", order.ID.Hex())
	qrBase64, err := GenerateUPIQR(vpa, payee, ref, order.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("QR generation error: %v", err)
	}

	frontURL := os.Getenv("FRONTEND_INVOICE_URL")
	if frontURL == "" {
		frontURL = "http://localhost:3000/invoice"
	}
	return RenderInvoicePDF(frontURL, order.ID.Hex(), qrBase64)
}
