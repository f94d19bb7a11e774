package checkout

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"kplat_back_end/internal/models"
)

type State string

const (
	StateEditing   State = "editing"
	StateConfirmed State = "confirmed"
)

// ErrConfirmed : l'état Confirmed est terminal pour cette commande,
// plus aucune édition ni re-soumission n'est acceptée.
var ErrConfirmed = errors.New("commande déjà confirmée")

// Machine : machine à états du formulaire de checkout, variante page unique.
// Elle possède sa propre copie du snapshot consommé au hand-off et ne relit
// jamais le panier vivant.
type Machine struct {
	state    State
	snapshot models.CartSnapshot
	form     Form
	order    *models.Order
}

func NewMachine(snap models.CartSnapshot) *Machine {
	items := make([]models.CartLine, len(snap.Items))
	copy(items, snap.Items)
	snap.Items = items
	return &Machine{state: StateEditing, snapshot: snap}
}

func (m *Machine) State() State             { return m.state }
func (m *Machine) Form() Form               { return m.form }
func (m *Machine) Order() *models.Order     { return m.order }
func (m *Machine) Lines() []models.CartLine { return m.snapshot.Items }

// SetField normalise puis enregistre la saisie d'un champ.
// Refusé une fois la commande confirmée.
func (m *Machine) SetField(field, raw string) (string, error) {
	if m.state == StateConfirmed {
		return "", ErrConfirmed
	}

	value := NormalizeField(field, raw)
	switch field {
	case "name":
		m.form.Name = value
	case "email":
		m.form.Email = value
	case "phone":
		m.form.Phone = value
	case "address":
		m.form.Address = value
	case "city":
		m.form.City = value
	case "state":
		m.form.State = value
	case "postal_code":
		m.form.PostalCode = value
	case "instructions":
		m.form.Instructions = value
	case "payment_method":
		m.form.PaymentMethod = value
	case "card_number":
		m.form.CardNumber = value
	case "card_name":
		m.form.CardName = value
	case "expiry":
		m.form.Expiry = value
	case "cvv":
		m.form.CVV = value
	default:
		return "", fmt.Errorf("champ inconnu: %s", field)
	}
	return value, nil
}

// SetForm remplace le formulaire entier (soumission en une requête),
// en appliquant la normalisation champ par champ.
func (m *Machine) SetForm(f Form) error {
	if m.state == StateConfirmed {
		return ErrConfirmed
	}
	m.form = f.Normalized()
	return nil
}

// Submit tente la transition Editing → Confirmed. Si une règle de
// validation échoue, l'état ne change pas et l'ensemble des erreurs par
// champ est rendu. En cas de succès la commande est construite depuis le
// formulaire + le snapshot + le récapitulatif (figé arrondi), et l'état
// devient Confirmed, terminal.
func (m *Machine) Submit() (*models.Order, map[string]string, error) {
	if m.state == StateConfirmed {
		return nil, nil, ErrConfirmed
	}

	if errs := m.form.Validate(); len(errs) > 0 {
		return nil, errs, nil
	}

	summary := Rounded(Summarize(m.snapshot.Items, DefaultTaxRate, DefaultDeliveryFee))

	payment := models.Payment{Method: m.form.PaymentMethod}
	if m.form.PaymentMethod == "credit" {
		digits := digitsOnly(m.form.CardNumber, 0)
		payment.CardLast4 = digits[len(digits)-4:]
		payment.CardName = m.form.CardName
	}

	now := time.Now()
	order := &models.Order{
		ID:           uuid.NewString(),
		Number:       fmt.Sprintf("KP-%06d", rand.Intn(1000000)),
		RestaurantID: m.snapshot.RestaurantID,
		Customer: models.Customer{
			Name:  m.form.Name,
			Email: m.form.Email,
			Phone: m.form.Phone,
		},
		Delivery: models.Delivery{
			Address:      m.form.Address,
			City:         m.form.City,
			State:        m.form.State,
			PostalCode:   m.form.PostalCode,
			Instructions: m.form.Instructions,
		},
		Payment:           payment,
		Lines:             m.snapshot.Items,
		Summary:           summary,
		Status:            "confirmed",
		CreatedAt:         now,
		EstimatedDelivery: now.Add(time.Hour),
	}

	m.order = order
	m.state = StateConfirmed
	return order, nil, nil
}
