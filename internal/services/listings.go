// listings.go
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
	"github.com/localnerve/jam-build-classifieds/internal/sanitize"
	"github.com/localnerve/jam-build-classifieds/internal/types"
	"github.com/localnerve/jam-build-classifieds/internal/validation"
	"gorm.io/gorm"
)

const listingNotFound = "Listing not found"

// GetListingDetail returns a live listing by id regardless of status.
// The owner's phone is only included when viewerID is the owner.
func GetListingDetail(db *gorm.DB, viewerID, id string) (*ListingDetail, error) {
	var l models.Listing
	err := db.
		Preload("Images", orderedImages).
		Preload("Owner").
		Where("id = ?", id).
		Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound(listingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", id, err)
	}

	detail := &ListingDetail{ListingView: newListingView(&l)}
	detail.ListingView.User = nil

	if l.Owner != nil {
		detail.User = &OwnerContact{
			OwnerSummary: *newOwnerSummary(l.Owner),
			Phone:        RedactPhone(viewerID, l.UserID, l.Owner.Phone),
			Email:        l.Owner.Email,
			CreatedAt:    l.Owner.CreatedAt,
		}
	}

	if err := db.Model(&models.Favorite{}).
		Where("listing_id = ?", id).
		Count(&detail.FavoriteCount).Error; err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	if viewerID != "" {
		var mine int64
		if err := db.Model(&models.Favorite{}).
			Where("user_id = ? AND listing_id = ?", viewerID, id).
			Count(&mine).Error; err != nil {
			return nil, fmt.Errorf("load favorite state: %w", err)
		}
		detail.IsFavorited = mine > 0
	}

	return detail, nil
}

// CreateListing validates, sanitizes and stores a new ACTIVE listing with its images.
func CreateListing(db *gorm.DB, actorID string, in *validation.ListingInput) (*ListingView, error) {
	if actorID == "" {
		return nil, types.Unauthorized("You must be signed in to post a listing")
	}
	if v := validation.Struct(in); len(v) > 0 {
		return nil, v.AppError()
	}

	l := &models.Listing{UserID: actorID, Status: models.StatusActive}
	applyListingInput(l, in)
	l.Images = newImages(in.Images)

	if err := db.Create(l).Error; err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	view, err := loadListingView(db, l.ID)
	if err != nil {
		return nil, err
	}

	RecordAudit(db, actorID, ActionCreate, ResourceListing, l.ID, map[string]any{"title": l.Title})
	return view, nil
}

// LoadMutableListing finds a live listing and checks that actorID may change it.
// Existence is checked before ownership.
func LoadMutableListing(db *gorm.DB, actorID, id string) (*models.Listing, error) {
	if actorID == "" {
		return nil, types.Unauthorized("Authentication required")
	}

	var l models.Listing
	err := db.Where("id = ?", id).Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound(listingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", id, err)
	}

	ok, err := CanMutate(db, actorID, l.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.Forbidden("You do not have permission to modify this listing")
	}
	return &l, nil
}

// UpdateListing replaces every field of l with in. Images are replaced only when in.Images is not nil.
// The caller obtains l from LoadMutableListing.
func UpdateListing(db *gorm.DB, actorID string, l *models.Listing, in *validation.ListingInput) (*ListingView, error) {
	if v := validation.Struct(in); len(v) > 0 {
		return nil, v.AppError()
	}
	applyListingInput(l, in)
	next := l.Status
	if in.Status != nil {
		next = *in.Status
	}
	if err := l.Transition(next); err != nil {
		return nil, types.BadRequest(err.Error())
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if in.Images != nil {
			if err := tx.Where("listing_id = ?", l.ID).Delete(&models.ListingImage{}).Error; err != nil {
				return fmt.Errorf("clear images: %w", err)
			}
			if images := newImages(in.Images); len(images) > 0 {
				for i := range images {
					images[i].ListingID = l.ID
				}
				if err := tx.Create(&images).Error; err != nil {
					return fmt.Errorf("insert images: %w", err)
				}
			}
		}

		res := tx.Model(&models.Listing{}).Where("id = ?", l.ID).Updates(listingColumns(l))
		if res.Error != nil {
			return fmt.Errorf("update listing: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return types.NotFound(listingNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := loadListingView(db, l.ID)
	if err != nil {
		return nil, err
	}

	RecordAudit(db, actorID, ActionUpdate, ResourceListing, l.ID, map[string]any{"status": l.Status})
	return view, nil
}

// SoftDeleteListing marks l deleted and INACTIVE in one write.
// The caller obtains l from LoadMutableListing.
func SoftDeleteListing(db *gorm.DB, actorID string, l *models.Listing) error {
	if err := l.MarkDeleted(db.NowFunc()); err != nil {
		return types.NotFound(listingNotFound)
	}

	res := db.Model(&models.Listing{}).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"status":     l.Status,
			"deleted_at": l.DeletedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("soft delete listing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return types.NotFound(listingNotFound)
	}

	RecordAudit(db, actorID, ActionDelete, ResourceListing, l.ID, nil)
	return nil
}

func loadListingView(db *gorm.DB, id string) (*ListingView, error) {
	var l models.Listing
	err := db.
		Preload("Images", orderedImages).
		Preload("Owner", ownerColumns).
		Where("id = ?", id).
		Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound(listingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reload listing %s: %w", id, err)
	}
	view := newListingView(&l)
	return &view, nil
}

// applyListingInput copies sanitized payload fields onto l
func applyListingInput(l *models.Listing, in *validation.ListingInput) {
	l.Title = sanitize.Text(in.Title, sanitize.MaxTitleLength)
	l.Description = sanitize.Text(in.Description, sanitize.MaxDescriptionLength)
	l.Price = in.Price.Float64()
	l.Category = in.Category
	l.ListingType = in.ListingType
	l.Address = sanitize.Text(in.Address, sanitize.MaxAddressLength)
	l.Ward = sanitize.OptionalText(in.Ward, sanitize.MaxNameLength)
	l.District = sanitize.Text(in.District, sanitize.MaxNameLength)
	l.City = sanitize.Text(in.City, sanitize.MaxNameLength)
	l.Latitude = types.FloatPtr(in.Latitude)
	l.Longitude = types.FloatPtr(in.Longitude)

	details := in.Details()
	if g, ok := details.(models.GoodsDetails); ok {
		g.Brand = sanitize.OptionalText(g.Brand, sanitize.MaxNameLength)
		g.Model = sanitize.OptionalText(g.Model, sanitize.MaxNameLength)
		details = g
	}
	l.SetDetails(details)
}

func newImages(in []validation.ImageInput) []models.ListingImage {
	images := make([]models.ListingImage, 0, len(in))
	for i, img := range in {
		images = append(images, models.ListingImage{
			URL:         img.URL,
			ExternalRef: img.ExternalRef,
			Position:    i,
		})
	}
	return images
}

// listingColumns is the full column set written by an update
func listingColumns(l *models.Listing) map[string]interface{} {
	return map[string]interface{}{
		"title":         l.Title,
		"description":   l.Description,
		"price":         l.Price,
		"category":      l.Category,
		"listing_type":  l.ListingType,
		"status":        l.Status,
		"property_type": l.PropertyType,
		"area":          l.Area,
		"bedrooms":      l.Bedrooms,
		"bathrooms":     l.Bathrooms,
		"condition":     l.Condition,
		"brand":         l.Brand,
		"model":         l.Model,
		"year_made":     l.YearMade,
		"address":       l.Address,
		"ward":          l.Ward,
		"district":      l.District,
		"city":          l.City,
		"latitude":      l.Latitude,
		"longitude":     l.Longitude,
		"updated_at":    time.Now().UTC(),
	}
}
