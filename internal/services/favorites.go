// favorites.go
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

package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/types"
	"github.com/localnerve/jam-build-classifieds/internal/validation"
	"gorm.io/gorm"
)

const alreadyFavorited = "You have already favorited this listing"

// FavoriteView is a favorite with its listing
type FavoriteView struct {
	ID        string       `json:"id"`
	ListingID string       `json:"listingId"`
	CreatedAt time.Time    `json:"createdAt"`
	Listing   *ListingView `json:"listing,omitempty"`
}

// ListFavorites returns the user's favorites of live listings, newest first
func ListFavorites(db *gorm.DB, userID string, page, pageSize int) (Page[FavoriteView], error) {
	scope := func() *gorm.DB {
		return db.Model(&models.Favorite{}).
			Joins("JOIN listings ON listings.id = favorites.listing_id AND listings.deleted_at IS NULL").
			Where("favorites.user_id = ?", userID)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return Page[FavoriteView]{}, fmt.Errorf("count favorites: %w", err)
	}

	var rows []models.Favorite
	if err := scope().
		Preload("Listing").
		Preload("Listing.Images", orderedImages).
		Preload("Listing.Owner", ownerColumns).
		Order("favorites.created_at DESC").
		Order("favorites.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return Page[FavoriteView]{}, fmt.Errorf("list favorites: %w", err)
	}

	views := make([]FavoriteView, 0, len(rows))
	for _, f := range rows {
		v := FavoriteView{ID: f.ID, ListingID: f.ListingID, CreatedAt: f.CreatedAt}
		if f.Listing != nil {
			lv := newListingView(f.Listing)
			v.Listing = &lv
		}
		views = append(views, v)
	}
	return NewPage(views, total, page, pageSize), nil
}

// AddFavorite bookmarks a live listing. A second favorite of the same listing is a BAD_REQUEST.
func AddFavorite(db *gorm.DB, userID string, in *validation.FavoriteInput) (*FavoriteView, error) {
	if v := validation.Struct(in); len(v) > 0 {
		return nil, v.AppError()
	}

	var listing models.Listing
	err := db.Select("id").Where("id = ?", in.ListingID).Take(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound(listingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", in.ListingID, err)
	}

	var existing int64
	if err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, in.ListingID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check favorite: %w", err)
	}
	if existing > 0 {
		return nil, types.BadRequest(alreadyFavorited)
	}

	fav := models.Favorite{UserID: userID, ListingID: in.ListingID}
	if err := db.Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.BadRequest(alreadyFavorited)
		}
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	return &FavoriteView{ID: fav.ID, ListingID: fav.ListingID, CreatedAt: fav.CreatedAt}, nil
}

// RemoveFavorite deletes the user's favorite of listingID
func RemoveFavorite(db *gorm.DB, userID, listingID string) error {
	if listingID == "" {
		return types.BadRequest("ListingId is required")
	}

	res := db.Where("user_id = ? AND listing_id = ?", userID, listingID).Delete(&models.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("delete favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return types.NotFound("Favorite not found")
	}
	return nil
}
