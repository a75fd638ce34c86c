package replyx

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/pesantren-notify/msgx"
)

// Predicate decides whether a rule applies. It receives the lower-cased body.
type Predicate func(body string) bool

// Builder produces the reply text for a matched message
type Builder func(msg *msgx.IncomingMessage) string

// Rule pairs a predicate with the reply it produces
type Rule struct {
	Name  string
	Match Predicate
	Reply Builder
}

// Responder evaluates rules in order; the first match wins and the fallback
// answers everything else, so every message gets exactly one reply.
type Responder struct {
	rules    []Rule
	fallback Builder
}

// FallbackRule is the rule name reported when no rule matched
const FallbackRule = "menu"

func New(fallback Builder, rules ...Rule) *Responder {
	return &Responder{rules: rules, fallback: fallback}
}

// Reply returns the name of the rule that fired and the reply text
func (r *Responder) Reply(msg *msgx.IncomingMessage) (string, string) {
	body := strings.ToLower(msg.Text)
	for _, rule := range r.rules {
		if rule.Match(body) {
			return rule.Name, rule.Reply(msg)
		}
	}
	return FallbackRule, r.fallback(msg)
}

// ContainsAny matches when the body contains any of the words
func ContainsAny(words ...string) Predicate {
	return func(body string) bool {
		for _, w := range words {
			if strings.Contains(body, w) {
				return true
			}
		}
		return false
	}
}

// Static ignores the message and always replies with text
func Static(text string) Builder {
	return func(*msgx.IncomingMessage) string { return text }
}

// Profile is the institution information quoted in replies
type Profile struct {
	Name       string
	Address    string
	Phone      string
	Website    string
	PPDBURL    string
	PaymentURL string
}

// Default builds the standard rule set: info, PPDB, payment, thanks, and
// the menu as fallback.
func Default(p Profile) *Responder {
	return New(menu(p),
		Rule{Name: "info", Match: ContainsAny("info"), Reply: Static(infoText(p))},
		Rule{Name: "ppdb", Match: ContainsAny("ppdb", "pendaftaran"), Reply: Static(ppdbText(p))},
		Rule{Name: "payment", Match: ContainsAny("spp", "pembayaran"), Reply: Static(paymentText(p))},
		Rule{Name: "thanks", Match: ContainsAny("terima kasih", "syukron"), Reply: thanks},
	)
}

func infoText(p Profile) string {
	return fmt.Sprintf("*Informasi %s*\n\n"+
		"Alamat: %s\nTelepon: %s\nWebsite: %s\n\n"+
		"Jam layanan: Senin-Sabtu, 08.00-15.00 WIB.",
		p.Name, p.Address, p.Phone, p.Website)
}

func ppdbText(p Profile) string {
	return fmt.Sprintf("*Penerimaan Santri Baru (PPDB)*\n\n"+
		"Pendaftaran dilakukan secara online melalui:\n%s\n\n"+
		"Siapkan: akta kelahiran, kartu keluarga, rapor terakhir, dan pas foto.\n"+
		"Informasi lebih lanjut hubungi %s.",
		p.PPDBURL, p.Phone)
}

func paymentText(p Profile) string {
	return fmt.Sprintf("*Informasi Pembayaran SPP*\n\n"+
		"Tagihan dan riwayat pembayaran dapat dilihat di:\n%s\n\n"+
		"Konfirmasi pembayaran akan dikirim otomatis setelah dana diterima.",
		p.PaymentURL)
}

func thanks(msg *msgx.IncomingMessage) string {
	if msg.Name != "" {
		return fmt.Sprintf("Sama-sama, %s. Jazakumullahu khairan 🙏", msg.Name)
	}
	return "Sama-sama. Jazakumullahu khairan 🙏"
}

func menu(p Profile) Builder {
	return func(msg *msgx.IncomingMessage) string {
		greeting := "Assalamu'alaikum"
		if msg.Name != "" {
			greeting += " " + msg.Name
		}
		return fmt.Sprintf("%s,\n\nTerima kasih telah menghubungi %s. "+
			"Ketik salah satu kata berikut:\n\n"+
			"• *INFO* - informasi umum\n"+
			"• *PPDB* - pendaftaran santri baru\n"+
			"• *SPP* - informasi pembayaran",
			greeting, p.Name)
	}
}
