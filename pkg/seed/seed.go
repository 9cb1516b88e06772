// Package seed loads demo data into empty collections so a fresh
// install has something to show. Collections that already hold data are
// left alone, so running it on every start is safe.
package seed

import (
	"context"
	"time"

	"maeled/pkg/catalog"
	"maeled/pkg/inventory"
	"maeled/pkg/logger"
	"maeled/pkg/staff"
	"maeled/pkg/storage"
)

// Run seeds every empty collection.
func Run(ctx context.Context, store *storage.Store, log *logger.Logger) error {
	if err := seedMenu(ctx, store, log); err != nil {
		return err
	}
	if err := seedStaff(ctx, store, log); err != nil {
		return err
	}
	return seedInventory(ctx, store, log)
}

func seedMenu(ctx context.Context, store *storage.Store, log *logger.Logger) error {
	_, err := storage.Mutate(ctx, store, catalog.Collection, func(items []catalog.Item) ([]catalog.Item, error) {
		if len(items) > 0 {
			return items, nil
		}
		log.Info(ctx, "seeding menu", "items", len(sampleMenu))
		return sampleMenu, nil
	})
	return err
}

func seedStaff(ctx context.Context, store *storage.Store, log *logger.Logger) error {
	_, err := storage.Mutate(ctx, store, staff.Collection, func(list []staff.Employee) ([]staff.Employee, error) {
		if len(list) > 0 {
			return list, nil
		}
		log.Info(ctx, "seeding staff", "employees", len(sampleStaff))
		return sampleStaff, nil
	})
	return err
}

func seedInventory(ctx context.Context, store *storage.Store, log *logger.Logger) error {
	_, err := storage.Mutate(ctx, store, inventory.Collection, func(list []inventory.Item) ([]inventory.Item, error) {
		if len(list) > 0 {
			return list, nil
		}
		log.Info(ctx, "seeding inventory", "items", len(sampleInventory))
		return sampleInventory, nil
	})
	return err
}

var sampleMenu = []catalog.Item{
	{
		ID: 1, Name: "Salade César", Category: "starters", Price: 8.50, Cost: 3.20,
		Available: true, Popularity: 85,
		Ingredients: "romaine, chicken, parmesan, croutons",
		Description: "Classic Caesar salad with grilled chicken", PrepTime: 10,
	},
	{
		ID: 2, Name: "Pizza 4 Fromages", Category: "pizzas", Price: 12.00, Cost: 4.50,
		Available: true, Popularity: 92,
		Ingredients: "mozzarella, gorgonzola, parmesan, goat cheese",
		Description: "Four cheese pizza on a thin crust", PrepTime: 15,
	},
	{
		ID: 3, Name: "Pâtes Carbonara", Category: "pasta", Price: 12.00, Cost: 3.80,
		Available: true, Popularity: 78,
		Ingredients: "spaghetti, pancetta, egg, parmesan",
		Description: "Creamy carbonara the Roman way", PrepTime: 12,
	},
	{
		ID: 4, Name: "Tiramisu", Category: "desserts", Price: 7.00, Cost: 2.40,
		Available: true, Popularity: 88,
		Ingredients: "mascarpone, coffee, ladyfingers, cocoa",
		Description: "House tiramisu", PrepTime: 5,
	},
	{
		ID: 5, Name: "Burrata", Category: "starters", Price: 6.00, Cost: 2.80,
		Available: false, Popularity: 65,
		Ingredients: "burrata, tomatoes, basil, olive oil",
		Description: "Burrata with heirloom tomatoes", PrepTime: 8,
	},
}

var seedTime = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

var sampleStaff = []staff.Employee{
	{
		ID: 1, Name: "Marie Laurent", Role: "Manager", Email: "marie@maeled.com",
		Phone: "+33 6 12 34 56 01", Salary: 3200, HireDate: "2021-03-01",
		HoursPerWeek: 39, Status: staff.StatusActive,
		ShiftDays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		ShiftTime: "09:00-17:00", Created: seedTime,
	},
	{
		ID: 2, Name: "Thomas Petit", Role: "Chef", Email: "thomas@maeled.com",
		Phone: "+33 6 12 34 56 02", Salary: 2800, HireDate: "2021-06-15",
		HoursPerWeek: 42, Status: staff.StatusActive,
		ShiftDays: []string{"Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		ShiftTime: "14:00-23:00", Created: seedTime,
	},
	{
		ID: 3, Name: "Sophie Moreau", Role: "Waiter", Email: "sophie@maeled.com",
		Phone: "+33 6 12 34 56 03", Salary: 1900, HireDate: "2022-02-01",
		HoursPerWeek: 35, Status: staff.StatusActive,
		ShiftDays: []string{"Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		ShiftTime: "17:00-00:00", Created: seedTime,
	},
	{
		ID: 4, Name: "Lucas Bernard", Role: "Waiter", Email: "lucas@maeled.com",
		Phone: "+33 6 12 34 56 04", Salary: 1900, HireDate: "2022-09-12",
		HoursPerWeek: 35, Status: staff.StatusLeave,
		ShiftDays: []string{"Monday", "Tuesday", "Saturday", "Sunday"},
		ShiftTime: "11:00-19:00", Created: seedTime,
	},
	{
		ID: 5, Name: "Emma Dubois", Role: "Bartender", Email: "emma@maeled.com",
		Phone: "+33 6 12 34 56 05", Salary: 2100, HireDate: "2023-04-03",
		HoursPerWeek: 30, Status: staff.StatusActive,
		ShiftDays: []string{"Thursday", "Friday", "Saturday"},
		ShiftTime: "18:00-01:00", Created: seedTime,
	},
}

var sampleInventory = []inventory.Item{
	{
		ID: 1, Name: "Mozzarella", Category: "dairy", Quantity: 12, Unit: "kg",
		MinQuantity: 5, UnitCost: 7.80, Supplier: "Fromagerie Blanc",
		ExpiryDate: "2024-02-10", Location: "Cold room A",
		LastUpdated: seedTime, Created: seedTime,
	},
	{
		ID: 2, Name: "Tomates", Category: "produce", Quantity: 4, Unit: "kg",
		MinQuantity: 6, UnitCost: 2.30, Supplier: "Primeurs Sud",
		ExpiryDate: "2024-01-22", Location: "Cold room B",
		LastUpdated: seedTime, Created: seedTime,
	},
	{
		ID: 3, Name: "Farine T55", Category: "dry goods", Quantity: 25, Unit: "kg",
		MinQuantity: 10, UnitCost: 1.10, Supplier: "Moulin Carré",
		Location: "Dry store", LastUpdated: seedTime, Created: seedTime,
	},
	{
		ID: 4, Name: "Huile d'olive", Category: "dry goods", Quantity: 8, Unit: "l",
		MinQuantity: 4, UnitCost: 9.50, Supplier: "Oliveraie Prat",
		Location: "Dry store", LastUpdated: seedTime, Created: seedTime,
	},
	{
		ID: 5, Name: "Café en grains", Category: "beverages", Quantity: 0, Unit: "kg",
		MinQuantity: 3, UnitCost: 14.00, Supplier: "Torréfaction Noire",
		Location: "Bar", LastUpdated: seedTime, Created: seedTime,
	},
}
