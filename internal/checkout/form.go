package checkout

import (
	"regexp"
	"strings"
)

// Form : le formulaire de checkout, variante page unique. Les champs carte
// ne sont exigés que si PaymentMethod vaut "credit".
type Form struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Instructions string `json:"instructions"`

	PaymentMethod string `json:"payment_method"` // "credit" | "paypal"
	CardNumber    string `json:"card_number"`
	CardName      string `json:"card_name"`
	Expiry        string `json:"expiry"`
	CVV           string `json:"cvv"`
}

var (
	emailRx  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)
	expiryRx = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRx    = regexp.MustCompile(`^\d{3,4}$`)
	alnumRx  = regexp.MustCompile(`[^A-Z0-9]`)
)

func digitsOnly(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if max > 0 && b.Len() == max {
				break
			}
		}
	}
	return b.String()
}

// NormalizeField normalise la saisie d'un champ, appliquée à chaque frappe :
//   - phone : chiffres uniquement, 10 max
//   - card_number : chiffres, 16 max, groupés par 4 pour l'affichage
//   - expiry : chiffres, 4 max, séparateur inséré après le 2e
//   - cvv : chiffres, 4 max
//   - postal_code : majuscules, alphanumérique uniquement
//
// Les autres champs passent tels quels (le trim se fait à la validation).
func NormalizeField(field, raw string) string {
	switch field {
	case "phone":
		return digitsOnly(raw, 10)
	case "card_number":
		return groupByFour(digitsOnly(raw, 16))
	case "expiry":
		d := digitsOnly(raw, 4)
		if len(d) > 2 {
			return d[:2] + "/" + d[2:]
		}
		return d
	case "cvv":
		return digitsOnly(raw, 4)
	case "postal_code":
		return alnumRx.ReplaceAllString(strings.ToUpper(raw), "")
	}
	return raw
}

func groupByFour(digits string) string {
	var groups []string
	for len(digits) > 4 {
		groups = append(groups, digits[:4])
		digits = digits[4:]
	}
	if digits != "" {
		groups = append(groups, digits)
	}
	return strings.Join(groups, " ")
}

// Normalized rend une copie du formulaire avec tous les champs normalisés.
func (f Form) Normalized() Form {
	f.Phone = NormalizeField("phone", f.Phone)
	f.CardNumber = NormalizeField("card_number", f.CardNumber)
	f.Expiry = NormalizeField("expiry", f.Expiry)
	f.CVV = NormalizeField("cvv", f.CVV)
	f.PostalCode = NormalizeField("postal_code", f.PostalCode)
	return f
}

// Validate évalue toutes les règles au moment du submit et rend l'ensemble
// des erreurs par champ. Vide = formulaire valide. Les messages sont le
// texte affiché en ligne à côté du champ fautif.
func (f Form) Validate() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if !emailRx.MatchString(strings.TrimSpace(f.Email)) {
		errs["email"] = "Enter a valid email address"
	}
	if len(digitsOnly(f.Phone, 0)) != 10 {
		errs["phone"] = "Phone number must be 10 digits"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(f.PostalCode) == "" {
		errs["postal_code"] = "Postal code is required"
	}

	switch f.PaymentMethod {
	case "credit":
		card := strings.Join(strings.Fields(f.CardNumber), "")
		if len(card) != 16 || digitsOnly(card, 0) != card {
			errs["card_number"] = "Card number must be 16 digits"
		}
		if !expiryRx.MatchString(f.Expiry) {
			errs["expiry"] = "Expiry must be MM/YY"
		}
		if !cvvRx.MatchString(f.CVV) {
			errs["cvv"] = "CVV must be 3 or 4 digits"
		}
	case "paypal":
		// aucun champ carte requis
	default:
		errs["payment_method"] = "Select a payment method"
	}

	return errs
}
