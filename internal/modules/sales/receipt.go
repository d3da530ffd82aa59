package sales

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Thermal printers at the stall cut 58mm paper, 32 characters per line.
const receiptWidth = 32

const (
	receiptStoreName = "WARUNG KAPTEN"
	receiptAddress   = "Jl. Dermaga No. 42, Pelabuhan"
	receiptPhone     = "Telp: 0812-3456-7890"
	receiptFooter1   = "Terima kasih telah berkunjung!"
	receiptFooter2   = "Selamat Menikmati, Kapten!"
)

// RenderReceipt lays out a completed transaction for the thermal printer.
// The input must be a frozen transaction; the renderer never recomputes
// totals or change.
func RenderReceipt(tx *Transaction) string {
	var b strings.Builder
	dashes := strings.Repeat("-", receiptWidth) + "\n"

	b.WriteString(center(receiptStoreName))
	b.WriteString(center(receiptAddress))
	b.WriteString(center(receiptPhone))
	b.WriteString(dashes)

	b.WriteString(row("No:", "#"+receiptNumber(tx.ID)))
	b.WriteString(row("Tgl:", tx.Timestamp.Format("02/01/2006 15:04")))
	b.WriteString(row("Kasir:", tx.CashierName))
	b.WriteString(row("Atas Nama:", tx.CustomerName))
	if tx.Channel != "" && tx.Channel != "DIRECT" {
		b.WriteString(row("Kanal:", string(tx.Channel)))
	}
	b.WriteString(dashes)

	for _, item := range tx.Items {
		b.WriteString(clip(item.Name) + "\n")
		qty := fmt.Sprintf("  %d x %s", item.Quantity, rupiah(item.Price))
		b.WriteString(row(qty, rupiah(item.Price*int64(item.Quantity))))
	}
	b.WriteString(dashes)

	b.WriteString(row("TOTAL:", "Rp "+rupiah(tx.Total)))
	b.WriteString(row(fmt.Sprintf("Bayar (%s):", tx.PaymentMethod), "Rp "+rupiah(tx.AmountPaid)))
	if tx.Change > 0 {
		b.WriteString(row("Kembali:", "Rp "+rupiah(tx.Change)))
	}
	b.WriteString(dashes)

	b.WriteString(center(receiptFooter1))
	b.WriteString(center(receiptFooter2))
	return b.String()
}

// receiptNumber is the last six characters of the transaction id, uppercased.
func receiptNumber(id string) string {
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// rupiah formats an amount with Indonesian thousand separators: 1500000
// becomes "1.500.000".
func rupiah(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}

// Layout widths count runes, not bytes: the printer advances one column per
// glyph whatever the encoding.
func center(s string) string {
	s = clip(s)
	pad := (receiptWidth - utf8.RuneCountInString(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s + "\n"
}

// row left-aligns the label and right-aligns the value on one line.
func row(left, right string) string {
	gap := receiptWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right + "\n"
}

func clip(s string) string {
	if utf8.RuneCountInString(s) <= receiptWidth {
		return s
	}
	return string([]rune(s)[:receiptWidth])
}
