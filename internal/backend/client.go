package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stayfinder/internal/domain"
)

var (
	// ErrUnreachable means no usable response arrived at all.
	ErrUnreachable = errors.New("booking service unreachable")
	// ErrNoResults is the service's "nothing matched" outcome: a 404 whose
	// body carries a message, not an error. It is a normal empty state.
	ErrNoResults = errors.New("no results")
)

// RejectedError is a well-formed error response from the booking service.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("booking service rejected request (%d): %s", e.Status, e.Message)
}

const wireDateFormat = "2006-01-02"

type Config struct {
	BaseURL string
	// PublicImageHost, when set, replaces "localhost" in image URLs so
	// clients outside the backend's network can resolve them.
	PublicImageHost string
	Timeout         time.Duration
	Logger          *logrus.Logger
}

// Client is a typed HTTP client for the booking service. Every call is
// issued once, carries the caller's bearer token when one is required, and
// maps failures to ErrUnreachable, ErrNoResults or *RejectedError. Retries
// are the caller's business.
type Client struct {
	baseURL    string
	imageHost  string
	httpClient *http.Client
	logger     *logrus.Logger
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		imageHost:  cfg.PublicImageHost,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) SearchFreeRooms(ctx context.Context, token string, req SearchRequest) ([]domain.RoomCandidate, error) {
	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, "/search_free_rooms", token, req, &resp); err != nil {
		return nil, err
	}

	rooms := make([]domain.RoomCandidate, 0, len(resp.AvailableRooms))
	for _, p := range resp.AvailableRooms {
		rooms = append(rooms, domain.RoomCandidate{
			RoomID:        p.IDRoom,
			HotelID:       p.IDHotel,
			HotelName:     p.HotelName,
			Country:       p.Country,
			City:          p.City,
			HotelStars:    p.HotelStars,
			Capacity:      p.Capacity,
			PricePerNight: p.PricePerNight,
			TotalPrice:    p.TotalPrice,
			ImageURLs:     []string{},
		})
	}
	return rooms, nil
}

// HotelImages returns the hotel's image URLs with host rewriting applied.
func (c *Client) HotelImages(ctx context.Context, hotelID int64) ([]string, error) {
	var resp []imagePayload
	path := fmt.Sprintf("/hotel_images/%d", hotelID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(resp))
	for _, img := range resp {
		urls = append(urls, c.rewriteImageURL(img.URL))
	}
	return urls, nil
}

func (c *Client) Hotel(ctx context.Context, hotelID int64) (*domain.Hotel, error) {
	var resp hotelPayload
	path := fmt.Sprintf("/hotel/%d", hotelID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return &domain.Hotel{
		ID:         resp.IDHotel,
		Name:       resp.Name,
		Stars:      resp.Stars,
		Country:    resp.Address.Country,
		City:       resp.Address.City,
		Street:     resp.Address.Street,
		Building:   resp.Address.Building,
		ZipCode:    resp.Address.ZipCode,
		Latitude:   resp.GeoLatitude,
		Longitude:  resp.GeoLength,
		Facilities: resp.Facilities,
	}, nil
}

func (c *Client) UserReservations(ctx context.Context, token string, userID int64, status domain.ReservationStatus) ([]domain.Reservation, error) {
	var resp reservationsResponse
	path := fmt.Sprintf("/user/%d/reservations?status=%s", userID, status)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Reservation, 0, len(resp.Reservations))
	for _, p := range resp.Reservations {
		r, err := reservationFromPayload(p)
		if err != nil {
			return nil, fmt.Errorf("decoding reservation %d: %w", p.IDReservation, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *Client) CreateReservation(ctx context.Context, token string, req ReservationRequest) error {
	return c.do(ctx, http.MethodPost, "/post_reservation", token, req, nil)
}

func (c *Client) CancelReservation(ctx context.Context, token string, reservationID, userID int64) error {
	body := cancellationRequest{IDReservation: reservationID, IDUser: userID}
	return c.do(ctx, http.MethodPost, "/post_cancellation", token, body, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &domain.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		UserID:       resp.UserID,
		Email:        resp.Email,
		FirstName:    resp.FirstName,
		LastName:     resp.LastName,
	}, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", "", req, nil)
}

func (c *Client) ChangePassword(ctx context.Context, token string, userID int64, oldPassword, newPassword string) error {
	path := fmt.Sprintf("/user/%d/password", userID)
	body := passwordChangeRequest{OldPassword: oldPassword, NewPassword: newPassword}
	return c.do(ctx, http.MethodPut, path, token, body, nil)
}

func (c *Client) Countries(ctx context.Context) ([]string, error) {
	var resp countriesResponse
	if err := c.do(ctx, http.MethodGet, "/countries", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Countries, nil
}

func (c *Client) Cities(ctx context.Context, country string) ([]string, error) {
	var resp citiesResponse
	path := "/cities?" + url.Values{"country": {country}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cities, nil
}

func (c *Client) RoomFacilities(ctx context.Context) ([]string, error) {
	var resp roomFacilitiesResponse
	if err := c.do(ctx, http.MethodGet, "/room_facilities", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.RoomFacilities, nil
}

func (c *Client) HotelFacilities(ctx context.Context) ([]string, error) {
	var resp hotelFacilitiesResponse
	if err := c.do(ctx, http.MethodGet, "/hotel_facilities", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.HotelFacilities, nil
}

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx responses are classified by body shape: an "error" field always
// means rejection, a "message" on a 404 means a normal empty result.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method":     method,
			"path":       path,
			"request_id": requestID,
		}).WithError(err).Warn("booking service call failed")
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) classify(status int, raw []byte) error {
	var probe errorProbe
	_ = json.Unmarshal(raw, &probe)

	if probe.Error != "" {
		return &RejectedError{Status: status, Message: probe.Error}
	}
	if status == http.StatusNotFound && probe.Message != "" {
		return ErrNoResults
	}
	return &RejectedError{Status: status, Message: strings.TrimSpace(string(raw))}
}

func (c *Client) rewriteImageURL(url string) string {
	if c.imageHost == "" {
		return url
	}
	return strings.Replace(url, "localhost", c.imageHost, 1)
}

func reservationFromPayload(p reservationPayload) (domain.Reservation, error) {
	first, err := time.Parse(wireDateFormat, p.FirstNight)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("first_night: %w", err)
	}
	last, err := time.Parse(wireDateFormat, p.LastNight)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("last_night: %w", err)
	}

	var taxID string
	if p.Nip != nil {
		taxID = *p.Nip
	}

	return domain.Reservation{
		ID:              p.IDReservation,
		RoomID:          p.Room.IDRoom,
		HotelID:         p.Hotel.IDHotel,
		HotelName:       p.Hotel.Name,
		HotelStars:      p.Hotel.Stars,
		FirstNight:      first,
		LastNight:       last,
		GuestName:       p.FullName,
		Price:           p.Price,
		BillType:        billTypeFromWire(p.BillType),
		TaxID:           taxID,
		Status:          statusFromWire(p.Status),
		Capacity:        p.Room.Capacity,
		PricePerNight:   p.Room.PricePerNight,
		RoomFacilities:  p.Room.Facilities,
		HotelFacilities: p.Hotel.Facilities,
	}, nil
}

func billTypeFromWire(s string) domain.BillType {
	if s == "I" {
		return domain.BillInvoice
	}
	return domain.BillReceipt
}

// BillTypeToWire maps the billing enum to the service's one-letter codes.
func BillTypeToWire(t domain.BillType) string {
	if t == domain.BillInvoice {
		return "I"
	}
	return "R"
}

func statusFromWire(s string) domain.ReservationStatus {
	if s == "C" {
		return domain.ReservationCancelled
	}
	return domain.ReservationActive
}
