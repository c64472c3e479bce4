// main.go
//
// A classifieds marketplace data service built on the jam-build data service stack
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-classifieds.
// jam-build-classifieds is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-classifieds is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-classifieds.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/localnerve/jam-build-classifieds/internal/auth"
	"github.com/localnerve/jam-build-classifieds/internal/config"
	"github.com/localnerve/jam-build-classifieds/internal/database"
	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/services"
	"github.com/localnerve/jam-build-classifieds/internal/types"
	"github.com/localnerve/jam-build-classifieds/internal/validation"
	"gorm.io/gorm"
)

// demoPassword satisfies the registration password rules
const demoPassword = "Password123!"

type demoUser struct {
	Name  string
	Email string
	Phone string
}

var demoUsers = []demoUser{
	{Name: "Anna Nguyen", Email: "anna.nguyen@example.com", Phone: "0901234567"},
	{Name: "Ben Tran", Email: "ben.tran@example.com", Phone: "0912345678"},
}

func ptr[T any](v T) *T {
	return &v
}

func flex(v float64) *types.FlexFloat64 {
	f := types.FlexFloat64(v)
	return &f
}

func images(urls ...string) []validation.ImageInput {
	out := make([]validation.ImageInput, 0, len(urls))
	for _, u := range urls {
		out = append(out, validation.ImageInput{URL: u})
	}
	return out
}

// demoListings returns the listings owned by each demo user, by index
func demoListings() map[int][]validation.ListingInput {
	return map[int][]validation.ListingInput{
		0: {
			{
				Title:        "Premium 3 bedroom apartment with river view",
				Description:  "Fully furnished 3 bedroom, 2 bathroom apartment overlooking the river. Pool, gym and park on site, walking distance to the shopping center.",
				Price:        8500000000,
				Category:     models.CategoryRealEstate,
				ListingType:  models.ListingSale,
				PropertyType: ptr(models.PropertyApartment),
				Area:         flex(120),
				Bedrooms:     ptr(3),
				Bathrooms:    ptr(2),
				Address:      "208 Nguyen Huu Canh",
				Ward:         ptr("Ward 22"),
				District:     "Binh Thanh",
				City:         "Ho Chi Minh City",
				Latitude:     flex(10.7948),
				Longitude:    flex(106.7218),
				Images: images(
					"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800",
					"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800",
				),
			},
			{
				Title:        "Affordable 1 bedroom apartment near downtown",
				Description:  "Compact 1 bedroom apartment with basic furniture and a city view. Close to public transport and markets, ideal for a single professional or a young couple.",
				Price:        3200000000,
				Category:     models.CategoryRealEstate,
				ListingType:  models.ListingSale,
				PropertyType: ptr(models.PropertyApartment),
				Area:         flex(52),
				Bedrooms:     ptr(1),
				Bathrooms:    ptr(1),
				Address:      "91 Nguyen Huu Canh",
				District:     "Binh Thanh",
				City:         "Ho Chi Minh City",
				Images:       images("https://images.unsplash.com/photo-1536376072261-38c75010e6c9?w=800"),
			},
			{
				Title:       "Used road bike in great condition",
				Description: "Aluminium frame road bike, 54cm, serviced last month with new tires and chain. Light scratches on the top tube, rides perfectly.",
				Price:       6500000,
				Category:    models.CategorySports,
				ListingType: models.ListingSale,
				Condition:   ptr(models.ConditionGood),
				Brand:       ptr("Giant"),
				Model:       ptr("Contend 2"),
				YearMade:    ptr(2021),
				Address:     "12 Le Loi",
				District:    "District 1",
				City:        "Ho Chi Minh City",
			},
		},
		1: {
			{
				Title:        "2 bedroom apartment for rent near the metro",
				Description:  "Modern 2 bedroom apartment for rent, fully furnished with a pool view. Close to the metro line and shopping mall, management fee included in the rent.",
				Price:        25000000,
				Category:     models.CategoryRealEstate,
				ListingType:  models.ListingRent,
				PropertyType: ptr(models.PropertyApartment),
				Area:         flex(75),
				Bedrooms:     ptr(2),
				Bathrooms:    ptr(2),
				Address:      "159 Hanoi Highway",
				Ward:         ptr("Thao Dien"),
				District:     "District 2",
				City:         "Ho Chi Minh City",
				Images:       images("https://images.unsplash.com/photo-1493809842364-78817add7ffb?w=800"),
			},
			{
				Title:        "Street front townhouse for business",
				Description:  "Four storey townhouse on a busy street, 5x20m lot with 4 bedrooms and 5 bathrooms. Excellent location for a shop or office near the shopping center.",
				Price:        18000000000,
				Category:     models.CategoryRealEstate,
				ListingType:  models.ListingSale,
				PropertyType: ptr(models.PropertyHouse),
				Area:         flex(100),
				Bedrooms:     ptr(4),
				Bathrooms:    ptr(5),
				Address:      "123 Nguyen Thi Thap",
				District:     "District 7",
				City:         "Ho Chi Minh City",
				Images: images(
					"https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=800",
					"https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800",
				),
			},
			{
				Title:       "Laptop 14 inch, barely used",
				Description: "14 inch laptop with 16GB memory and 512GB SSD. Bought six months ago, still under warranty, comes with the original charger and box.",
				Price:       21000000,
				Category:    models.CategoryElectronics,
				ListingType: models.ListingSale,
				Condition:   ptr(models.ConditionLikeNew),
				Brand:       ptr("Lenovo"),
				Model:       ptr("ThinkPad T14"),
				YearMade:    ptr(2024),
				Address:     "45 Tran Hung Dao",
				District:    "Hoan Kiem",
				City:        "Hanoi",
			},
		},
	}
}

func main() {
	var reset bool
	flag.BoolVar(&reset, "reset", false, "delete all marketplace data before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if reset {
		if err := clearData(db); err != nil {
			log.Fatalf("Failed to clear existing data: %v", err)
		}
		log.Println("Cleared existing data")
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	listings := demoListings()
	for i, du := range demoUsers {
		user, created, err := ensureUser(db, du, hash)
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", du.Email, err)
		}
		if !created {
			log.Printf("User %s already exists, skipping its listings", du.Email)
			continue
		}

		for _, in := range listings[i] {
			in := in
			if _, err := services.CreateListing(db, user.ID, &in); err != nil {
				log.Fatalf("Failed to create listing %q: %v", in.Title, err)
			}
		}
		log.Printf("Created user %s with %d listings", du.Email, len(listings[i]))
	}

	log.Printf("Seed complete, demo password is %s", demoPassword)
}

// ensureUser creates du unless its email is already registered
func ensureUser(db *gorm.DB, du demoUser, hash string) (*models.User, bool, error) {
	var existing models.User
	err := db.Where("email = ?", du.Email).Take(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user := &models.User{
		Name:         du.Name,
		Email:        du.Email,
		Phone:        ptr(du.Phone),
		Image:        ptr("https://i.pravatar.cc/150?u=" + du.Email),
		Role:         models.RoleSeller,
		PasswordHash: ptr(hash),
	}
	if err := db.Create(user).Error; err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// clearData removes every row, children first
func clearData(db *gorm.DB) error {
	all := models.All()
	return db.Transaction(func(tx *gorm.DB) error {
		for i := len(all) - 1; i >= 0; i-- {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(all[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
