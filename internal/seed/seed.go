package seed

import (
	"context"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"

	"lunchline/internal/domain"
	"lunchline/internal/logger"
	"lunchline/internal/repository"
)

type dish struct {
	name       string
	category   string
	price      float64
	vegetarian bool
	allergens  []string
}

var dishes = []dish{
	{"Margherita Pizza", "Mains", 11.50, true, []string{"gluten", "dairy"}},
	{"Pepperoni Pizza", "Mains", 13.00, false, []string{"gluten", "dairy"}},
	{"Spaghetti Carbonara", "Mains", 12.50, false, []string{"gluten", "egg", "dairy"}},
	{"Grilled Chicken Burger", "Mains", 10.50, false, []string{"gluten"}},
	{"Falafel Wrap", "Mains", 9.00, true, []string{"gluten", "sesame"}},
	{"Caesar Salad", "Starters", 8.50, false, []string{"egg", "dairy", "fish"}},
	{"Tomato Bruschetta", "Starters", 6.50, true, []string{"gluten"}},
	{"French Onion Soup", "Starters", 7.00, true, []string{"dairy"}},
	{"Tiramisu", "Desserts", 6.00, true, []string{"egg", "dairy", "gluten"}},
	{"Chocolate Brownie", "Desserts", 5.50, true, []string{"egg", "dairy", "gluten", "nuts"}},
	{"Fresh Lemonade", "Drinks", 3.50, true, nil},
	{"Iced Coffee", "Drinks", 4.00, true, nil},
}

// Run replaces the menu with a fresh seed set. Stock levels and
// descriptions are randomized; existing orders are left untouched.
func Run(ctx context.Context, menu *repository.MenuRepository, lg *logger.Logger) error {
	f := faker.New()

	items := make([]domain.MenuItem, 0, len(dishes))
	for _, d := range dishes {
		stock := f.IntBetween(10, 50)
		items = append(items, domain.MenuItem{
			ID:           uuid.New(),
			Name:         d.name,
			Description:  f.Lorem().Sentence(10),
			Price:        d.price,
			Images:       []string{},
			Vegetarian:   d.vegetarian,
			Allergens:    append([]string{}, d.allergens...),
			Ingredients:  f.Lorem().Words(5),
			Category:     d.category,
			InitialStock: stock,
			CurrentStock: stock,
		})
	}

	if err := menu.ReplaceAll(ctx, items); err != nil {
		return err
	}
	lg.Info("menu_seeded", map[string]any{"items": len(items)})
	return nil
}
