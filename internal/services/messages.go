// messages.go
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

// MessageSender is the sender block of a received message
type MessageSender struct {
	OwnerSummary
	Email string `json:"email"`
}

// MessageListing is the listing block of a received message
type MessageListing struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Image *ImageView `json:"image"`
}

// MessageView is a message as returned by the API
type MessageView struct {
	ID         string          `json:"id"`
	Content    string          `json:"content"`
	Phone      *string         `json:"phone"`
	Email      *string         `json:"email"`
	Read       bool            `json:"read"`
	SenderID   string          `json:"senderId"`
	ReceiverID string          `json:"receiverId"`
	ListingID  string          `json:"listingId"`
	CreatedAt  time.Time       `json:"createdAt"`
	Sender     *MessageSender  `json:"sender,omitempty"`
	Listing    *MessageListing `json:"listing,omitempty"`
}

func newMessageView(m *models.Message) MessageView {
	v := MessageView{
		ID:         m.ID,
		Content:    m.Content,
		Phone:      m.Phone,
		Email:      m.Email,
		Read:       m.Read,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		ListingID:  m.ListingID,
		CreatedAt:  m.CreatedAt,
	}
	if m.Sender != nil {
		v.Sender = &MessageSender{OwnerSummary: *newOwnerSummary(m.Sender), Email: m.Sender.Email}
	}
	if m.Listing != nil {
		v.Listing = &MessageListing{ID: m.Listing.ID, Title: m.Listing.Title}
		if len(m.Listing.Images) > 0 {
			img := m.Listing.Images[0]
			v.Listing.Image = &ImageView{ID: img.ID, URL: img.URL, ExternalRef: img.ExternalRef, Position: img.Position}
		}
	}
	return v
}

// ListMessages returns messages received by userID, newest first
func ListMessages(db *gorm.DB, userID string, page, pageSize int) (Page[MessageView], error) {
	var total int64
	if err := db.Model(&models.Message{}).
		Where("receiver_id = ?", userID).
		Count(&total).Error; err != nil {
		return Page[MessageView]{}, fmt.Errorf("count messages: %w", err)
	}

	var rows []models.Message
	if err := db.
		Preload("Sender", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "image", "email") }).
		Preload("Listing", func(db *gorm.DB) *gorm.DB { return db.Unscoped().Select("id", "title") }).
		Preload("Listing.Images", orderedImages).
		Where("receiver_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return Page[MessageView]{}, fmt.Errorf("list messages: %w", err)
	}

	views := make([]MessageView, 0, len(rows))
	for i := range rows {
		views = append(views, newMessageView(&rows[i]))
	}
	return NewPage(views, total, page, pageSize), nil
}

// SendMessage stores a contact message to the owner of a live listing.
// Owners cannot message their own listing.
func SendMessage(db *gorm.DB, senderID string, in *validation.MessageInput) (*MessageView, error) {
	if v := validation.Struct(in); len(v) > 0 {
		return nil, v.AppError()
	}

	var listing models.Listing
	err := db.Select("id", "user_id").Where("id = ?", in.ListingID).Take(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound(listingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", in.ListingID, err)
	}
	if listing.UserID == senderID {
		return nil, types.BadRequest("You cannot send a message to yourself")
	}

	msg := models.Message{
		Content:    sanitize.Text(in.Content, sanitize.MaxMessageLength),
		Phone:      sanitize.OptionalText(in.Phone, sanitize.MaxPhoneLength),
		Email:      in.Email,
		SenderID:   senderID,
		ReceiverID: listing.UserID,
		ListingID:  listing.ID,
	}
	if err := db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	RecordAudit(db, senderID, ActionCreate, "Message", msg.ID, nil)

	v := newMessageView(&msg)
	return &v, nil
}

// MarkMessageRead flags a message read. Only its receiver may do so.
func MarkMessageRead(db *gorm.DB, userID, id string) (*MessageView, error) {
	var msg models.Message
	err := db.Where("id = ?", id).Take(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("Message not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load message %s: %w", id, err)
	}
	if msg.ReceiverID != userID {
		return nil, types.Forbidden("You cannot modify this message")
	}

	if !msg.Read {
		if err := db.Model(&models.Message{}).Where("id = ?", id).Update("is_read", true).Error; err != nil {
			return nil, fmt.Errorf("mark message read: %w", err)
		}
		msg.Read = true
	}

	v := newMessageView(&msg)
	return &v, nil
}
