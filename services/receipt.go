package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type ReceiptData struct {
	ShopName string
	Currency string
	Label    string
	Bill     models.Bill
	Lines    []models.DraftLine
	IssuedAt time.Time
}

// Receipt is a rendered bill ready to be downloaded.
type Receipt struct {
	Bill     models.Bill
	FileName string
	PDF      []byte
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// RenderReceipt lays out the bill on one A4 page: shop name, who it is
// for, the item table and the grand total.
func RenderReceipt(data ReceiptData) (*Receipt, error) {
	shop := data.ShopName
	if shop == "" {
		shop = "Restaurant"
	}
	label := data.Label
	if label == "" {
		label = "Takeaway"
	}
	total := data.Bill.TotalAmount
	if total == 0 {
		for _, l := range data.Lines {
			total += l.Subtotal()
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Bill "+data.Bill.BillNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(shop), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, tr("Bill For: "+label), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+data.IssuedAt.Format("02/01/2006, 15:04:05"), "", 1, "L", false, 0, "")
	if data.Bill.BillNumber != "" {
		pdf.CellFormat(0, 6, tr("Bill No: "+data.Bill.BillNumber), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{90, 20, 35, 35}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, head := range []string{"Item", "Qty", "Price", "Total"} {
		pdf.CellFormat(widths[i], 8, head, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, l := range data.Lines {
		pdf.CellFormat(widths[0], 7, tr(l.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, strconv.Itoa(l.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, tr(utils.FormatCurrency(data.Currency, l.UnitPrice)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, tr(utils.FormatCurrency(data.Currency, l.Subtotal())), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("Grand Total: "+utils.FormatCurrency(data.Currency, total)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}

	name := fmt.Sprintf("Bill-%s-%s.pdf", label, data.Bill.BillNumber)
	return &Receipt{
		Bill:     data.Bill,
		FileName: unsafeFileChars.ReplaceAllString(name, "_"),
		PDF:      buf.Bytes(),
	}, nil
}
