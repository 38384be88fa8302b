package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"stayfinder/internal/domain"
)

var ErrAlreadyCached = errors.New("reservation already cached")

// CachedReservation is the locally held copy of an active reservation.
// Facility lists are stored as JSON text so the schema works on both
// sqlite and postgres.
type CachedReservation struct {
	ReservationID   int64  `gorm:"column:id_reservation;primaryKey"`
	UserID          int64  `gorm:"column:id_user;index"`
	RoomID          int64  `gorm:"column:id_room"`
	HotelID         int64  `gorm:"column:id_hotel"`
	HotelName       string `gorm:"column:hotel_name"`
	HotelStars      int    `gorm:"column:hotel_stars"`
	FirstNight      time.Time
	LastNight       time.Time
	GuestName       string `gorm:"column:full_name"`
	Price           float64
	BillType        string `gorm:"column:bill_type"`
	TaxID           string `gorm:"column:nip"`
	Status          string
	Capacity        int
	PricePerNight   float64 `gorm:"column:price_per_night"`
	RoomFacilities  []byte  `gorm:"column:room_facilities"`
	HotelFacilities []byte  `gorm:"column:hotel_facilities"`
}

func (CachedReservation) TableName() string { return "reservation_cache" }

type ReservationCacheRepository struct {
	db *gorm.DB
}

func NewReservationCacheRepository(db *gorm.DB) *ReservationCacheRepository {
	return &ReservationCacheRepository{db: db}
}

// ReplaceForUser swaps the user's whole cached set in one transaction.
// Replacing instead of merging is what keeps cancelled entries from ever
// resurfacing locally.
func (r *ReservationCacheRepository) ReplaceForUser(ctx context.Context, userID int64, items []domain.Reservation) error {
	rows := make([]CachedReservation, 0, len(items))
	for _, item := range items {
		row, err := rowFromDomain(userID, item)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_user = ?", userID).Delete(&CachedReservation{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *ReservationCacheRepository) ActiveForUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	var rows []CachedReservation
	err := r.db.WithContext(ctx).
		Where("id_user = ? AND status = ?", userID, string(domain.ReservationActive)).
		Order("first_night").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, row := range rows {
		item, err := rowToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Insert adds a single reservation to the cache; a duplicate id maps to
// ErrAlreadyCached rather than a bare driver error.
func (r *ReservationCacheRepository) Insert(ctx context.Context, userID int64, item domain.Reservation) error {
	row, err := rowFromDomain(userID, item)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyCached
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyCached
		}
		// the pure-Go sqlite driver reports constraint violations only by
		// message
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ErrAlreadyCached
		}
		return err
	}
	return nil
}

func (r *ReservationCacheRepository) RemoveByID(ctx context.Context, userID, reservationID int64) error {
	return r.db.WithContext(ctx).
		Where("id_user = ? AND id_reservation = ?", userID, reservationID).
		Delete(&CachedReservation{}).Error
}

func rowFromDomain(userID int64, item domain.Reservation) (CachedReservation, error) {
	roomFacilities, err := json.Marshal(item.RoomFacilities)
	if err != nil {
		return CachedReservation{}, err
	}
	hotelFacilities, err := json.Marshal(item.HotelFacilities)
	if err != nil {
		return CachedReservation{}, err
	}

	return CachedReservation{
		ReservationID:   item.ID,
		UserID:          userID,
		RoomID:          item.RoomID,
		HotelID:         item.HotelID,
		HotelName:       item.HotelName,
		HotelStars:      item.HotelStars,
		FirstNight:      item.FirstNight,
		LastNight:       item.LastNight,
		GuestName:       item.GuestName,
		Price:           item.Price,
		BillType:        string(item.BillType),
		TaxID:           item.TaxID,
		Status:          string(item.Status),
		Capacity:        item.Capacity,
		PricePerNight:   item.PricePerNight,
		RoomFacilities:  roomFacilities,
		HotelFacilities: hotelFacilities,
	}, nil
}

func rowToDomain(row CachedReservation) (domain.Reservation, error) {
	var roomFacilities, hotelFacilities []string
	if len(row.RoomFacilities) > 0 {
		if err := json.Unmarshal(row.RoomFacilities, &roomFacilities); err != nil {
			return domain.Reservation{}, err
		}
	}
	if len(row.HotelFacilities) > 0 {
		if err := json.Unmarshal(row.HotelFacilities, &hotelFacilities); err != nil {
			return domain.Reservation{}, err
		}
	}

	return domain.Reservation{
		ID:              row.ReservationID,
		RoomID:          row.RoomID,
		HotelID:         row.HotelID,
		HotelName:       row.HotelName,
		HotelStars:      row.HotelStars,
		FirstNight:      row.FirstNight,
		LastNight:       row.LastNight,
		GuestName:       row.GuestName,
		Price:           row.Price,
		BillType:        domain.BillType(row.BillType),
		TaxID:           row.TaxID,
		Status:          domain.ReservationStatus(row.Status),
		Capacity:        row.Capacity,
		PricePerNight:   row.PricePerNight,
		RoomFacilities:  roomFacilities,
		HotelFacilities: hotelFacilities,
	}, nil
}
