package cart

import "kplat_back_end/internal/models"

// Commandes du panier. Apply est une fonction de transition pure :
// rejouer la même séquence de commandes redonne toujours le même panier.
type Command interface {
	isCommand()
}

// AddItem insère l'article avec quantité 1. Si la ligne existe déjà,
// c'est un no-op : "ajouter" n'incrémente jamais, seul IncreaseQuantity le fait.
type AddItem struct {
	Item models.MenuItem
}

type RemoveItem struct {
	ItemID string
}

type IncreaseQuantity struct {
	ItemID string
}

// DecreaseQuantity décrémente si quantité > 1, sinon no-op.
// Ne supprime jamais la ligne : la suppression passe par RemoveItem.
type DecreaseQuantity struct {
	ItemID string
}

type Clear struct{}

func (AddItem) isCommand()          {}
func (RemoveItem) isCommand()       {}
func (IncreaseQuantity) isCommand() {}
func (DecreaseQuantity) isCommand() {}
func (Clear) isCommand()            {}

// Apply applique une commande et rend le nouveau panier.
// L'état d'entrée n'est jamais modifié.
func Apply(c Cart, cmd Command) Cart {
	switch cmd := cmd.(type) {
	case AddItem:
		if c.Contains(cmd.Item.ID) {
			return c
		}
		next := cloneLines(c)
		next.Lines = append(next.Lines, models.CartLine{
			ItemID:      cmd.Item.ID,
			Name:        cmd.Item.Name,
			Description: cmd.Item.Description,
			UnitPrice:   cmd.Item.UnitPrice,
			ImageRef:    cmd.Item.ImageRef,
			Quantity:    1,
		})
		return next

	case RemoveItem:
		if !c.Contains(cmd.ItemID) {
			return c
		}
		next := New(c.RestaurantID)
		for _, line := range c.Lines {
			if line.ItemID != cmd.ItemID {
				next.Lines = append(next.Lines, line)
			}
		}
		return next

	case IncreaseQuantity:
		next := cloneLines(c)
		for i := range next.Lines {
			if next.Lines[i].ItemID == cmd.ItemID {
				next.Lines[i].Quantity++
			}
		}
		return next

	case DecreaseQuantity:
		next := cloneLines(c)
		for i := range next.Lines {
			if next.Lines[i].ItemID == cmd.ItemID && next.Lines[i].Quantity > 1 {
				next.Lines[i].Quantity--
			}
		}
		return next

	case Clear:
		return New(c.RestaurantID)
	}

	return c
}

func cloneLines(c Cart) Cart {
	next := New(c.RestaurantID)
	if len(c.Lines) > 0 {
		next.Lines = make([]models.CartLine, len(c.Lines))
		copy(next.Lines, c.Lines)
	}
	return next
}
