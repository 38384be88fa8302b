package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfinder/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, imageHost string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return New(Config{
		BaseURL:         srv.URL,
		PublicImageHost: imageHost,
		Timeout:         time.Second,
		Logger:          logger,
	})
}

func TestSearchFreeRooms_Success(t *testing.T) {
	var gotBody SearchRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search_free_rooms", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"available_rooms":[
			{"id_room":1,"capacity":2,"price_per_night":100.0,"total_price":200.0,
			 "hotel_name":"Grand","id_hotel":10,"city":"Gdansk","country":"Poland","hotel_stars":4}
		]}`))
	}, "")

	rooms, err := client.SearchFreeRooms(context.Background(), "tok", SearchRequest{
		StartDate:       "2025-06-10",
		EndDate:         "2025-06-12",
		Guests:          2,
		RoomFacilities:  []string{},
		HotelFacilities: []string{},
	})

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, int64(1), rooms[0].RoomID)
	assert.Equal(t, "Grand", rooms[0].HotelName)
	assert.Equal(t, 200.0, rooms[0].TotalPrice)
	assert.NotNil(t, rooms[0].ImageURLs)
	assert.Equal(t, 2, gotBody.Guests)
}

func TestSearchFreeRooms_NoMatchesIs404WithMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"No rooms found matching the given criteria"}`))
	}, "")

	_, err := client.SearchFreeRooms(context.Background(), "tok", SearchRequest{})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearchFreeRooms_ErrorShapeIsRejection(t *testing.T) {
	// A 404 whose body says "error" is a rejection, never an empty result.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown endpoint"}`))
	}, "")

	_, err := client.SearchFreeRooms(context.Background(), "tok", SearchRequest{})

	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusNotFound, rej.Status)
	assert.Equal(t, "unknown endpoint", rej.Message)
	assert.NotErrorIs(t, err, ErrNoResults)
}

func TestSearchFreeRooms_NonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}, "")

	_, err := client.SearchFreeRooms(context.Background(), "tok", SearchRequest{})

	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusBadGateway, rej.Status)
	assert.Equal(t, "upstream exploded", rej.Message)
}

func TestSearchFreeRooms_Unreachable(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := New(Config{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
		Logger:  logger,
	})

	_, err := client.SearchFreeRooms(context.Background(), "tok", SearchRequest{})
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestHotelImages_RewritesLocalhost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/hotel_images/10", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[
			{"url":"http://localhost:5000/static/a.jpg","description":"front","is_main":true},
			{"url":"http://cdn.example.com/b.jpg","description":"","is_main":false}
		]`))
	}, "images.example.com")

	urls, err := client.HotelImages(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "http://images.example.com:5000/static/a.jpg", urls[0])
	assert.Equal(t, "http://cdn.example.com/b.jpg", urls[1])
}

func TestHotelImages_NoRewriteWithoutHost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"url":"http://localhost/x.jpg","description":"","is_main":false}]`))
	}, "")

	urls, err := client.HotelImages(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost/x.jpg"}, urls)
}

func TestUserReservations_ParsesNestedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/42/reservations", r.URL.Path)
		require.Equal(t, "active", r.URL.Query().Get("status"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"reservations":[{
			"id_reservation":901,
			"first_night":"2025-07-01",
			"last_night":"2025-07-04",
			"full_name":"Jan Kowalski",
			"price":300.0,
			"bill_type":"I",
			"nip":"1234567890",
			"status":"A",
			"room":{"id_room":7,"capacity":2,"price_per_night":100.0,"facilities":["wifi"]},
			"hotel":{"id_hotel":10,"name":"Grand","stars":4,"facilities":["pool"]}
		}]}`))
	}, "")

	items, err := client.UserReservations(context.Background(), "tok", 42, domain.ReservationActive)

	require.NoError(t, err)
	require.Len(t, items, 1)
	r := items[0]
	assert.Equal(t, int64(901), r.ID)
	assert.Equal(t, int64(7), r.RoomID)
	assert.Equal(t, int64(10), r.HotelID)
	assert.Equal(t, domain.BillInvoice, r.BillType)
	assert.Equal(t, "1234567890", r.TaxID)
	assert.Equal(t, domain.ReservationActive, r.Status)
	assert.Equal(t, 3, r.Nights())
	assert.Equal(t, []string{"wifi"}, r.RoomFacilities)
	assert.Equal(t, []string{"pool"}, r.HotelFacilities)
}

func TestUserReservations_NullTaxIDAndCancelledStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"reservations":[{
			"id_reservation":902,
			"first_night":"2025-07-01",
			"last_night":"2025-07-02",
			"full_name":"Jan Kowalski",
			"price":100.0,
			"bill_type":"R",
			"nip":null,
			"status":"C",
			"room":{"id_room":7,"capacity":2,"price_per_night":100.0,"facilities":[]},
			"hotel":{"id_hotel":10,"name":"Grand","stars":4,"facilities":[]}
		}]}`))
	}, "")

	items, err := client.UserReservations(context.Background(), "tok", 42, domain.ReservationCancelled)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.BillReceipt, items[0].BillType)
	assert.Empty(t, items[0].TaxID)
	assert.Equal(t, domain.ReservationCancelled, items[0].Status)
}

func TestUserReservations_NoneIs404WithMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"No reservations found"}`))
	}, "")

	_, err := client.UserReservations(context.Background(), "tok", 42, domain.ReservationActive)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestCreateReservation_SendsWirePayload(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/post_reservation", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Reservation created"}`))
	}, "")

	err := client.CreateReservation(context.Background(), "tok", ReservationRequest{
		IDRoom:     7,
		IDUser:     42,
		FirstNight: "2025-07-01",
		LastNight:  "2025-07-04",
		FullName:   "Jan Kowalski",
		BillType:   "R",
	})

	require.NoError(t, err)
	assert.Equal(t, float64(7), got["id_room"])
	assert.Equal(t, "R", got["bill_type"])
	// receipt billing omits the tax id entirely
	_, hasNip := got["nip"]
	assert.False(t, hasNip)
}

func TestCancelReservation_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/post_cancellation", r.URL.Path)
		var got cancellationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, int64(901), got.IDReservation)
		assert.Equal(t, int64(42), got.IDUser)

		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Reservation already cancelled"}`))
	}, "")

	err := client.CancelReservation(context.Background(), "tok", 901, 42)

	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Reservation already cancelled", rej.Message)
}

func TestLogin_BuildsSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"access_token":"at","refresh_token":"rt","token_type":"bearer",
			"user_id":42,"email":"jan@example.com","first_name":"Jan","last_name":"Kowalski"
		}`))
	}, "")

	session, err := client.Login(context.Background(), "jan@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "at", session.AccessToken)
	assert.Equal(t, "rt", session.RefreshToken)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, "Jan", session.FirstName)
}

func TestHotel_ParsesGeoAndAddress(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/hotel/10", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"id_hotel":10,"name":"Grand","stars":4,
			"geo_latitude":54.35,"geo_length":18.64,
			"address":{"country":"Poland","city":"Gdansk","street":"Dluga","building":"1","zip_code":"80-001"},
			"facilities":["pool","spa"]
		}`))
	}, "")

	hotel, err := client.Hotel(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, "Grand", hotel.Name)
	assert.Equal(t, 54.35, hotel.Latitude)
	assert.Equal(t, 18.64, hotel.Longitude)
	assert.Equal(t, "Gdansk", hotel.City)
	assert.Equal(t, []string{"pool", "spa"}, hotel.Facilities)
}

func TestCountries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/countries", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"countries":["Poland","Spain"]}`))
	}, "")

	countries, err := client.Countries(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Poland", "Spain"}, countries)
}

func TestCities_EscapesCountryQuery(t *testing.T) {
	var gotCountry string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cities", r.URL.Path)
		gotCountry = r.URL.Query().Get("country")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"cities":["New York","Boston"]}`))
	}, "")

	cities, err := client.Cities(context.Background(), "United States")

	require.NoError(t, err)
	assert.Equal(t, "United States", gotCountry)
	assert.Equal(t, []string{"New York", "Boston"}, cities)
}

func TestCities_CountryWithQueryMetacharacters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Trinidad & Tobago", r.URL.Query().Get("country"))
		// a literal ampersand must stay inside the value, never split it
		assert.Len(t, r.URL.Query(), 1)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"cities":["Port of Spain"]}`))
	}, "")

	cities, err := client.Cities(context.Background(), "Trinidad & Tobago")

	require.NoError(t, err)
	assert.Equal(t, []string{"Port of Spain"}, cities)
}

func TestBillTypeWireCodes(t *testing.T) {
	assert.Equal(t, "I", BillTypeToWire(domain.BillInvoice))
	assert.Equal(t, "R", BillTypeToWire(domain.BillReceipt))
	assert.Equal(t, domain.BillInvoice, billTypeFromWire("I"))
	assert.Equal(t, domain.BillReceipt, billTypeFromWire("R"))
}
