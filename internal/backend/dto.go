package backend

// Wire payloads for the booking service API. Field names follow the
// service's JSON contract exactly; optional filter fields are omitted when
// unset so the service applies no constraint for them.

type SearchRequest struct {
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Guests          int      `json:"guests"`
	LowestPrice     *float64 `json:"lowest_price,omitempty"`
	HighestPrice    *float64 `json:"highest_price,omitempty"`
	MinHotelStars   *int     `json:"min_hotel_stars,omitempty"`
	MaxHotelStars   *int     `json:"max_hotel_stars,omitempty"`
	SortBy          string   `json:"sort_by,omitempty"`
	SortOrder       string   `json:"sort_order,omitempty"`
	Countries       []string `json:"countries,omitempty"`
	City            []string `json:"city,omitempty"`
	RoomFacilities  []string `json:"room_facilities"`
	HotelFacilities []string `json:"hotel_facilities"`
}

type roomPayload struct {
	IDRoom        int64   `json:"id_room"`
	Capacity      int     `json:"capacity"`
	PricePerNight float64 `json:"price_per_night"`
	TotalPrice    float64 `json:"total_price"`
	HotelName     string  `json:"hotel_name"`
	IDHotel       int64   `json:"id_hotel"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	HotelStars    int     `json:"hotel_stars"`
}

type searchResponse struct {
	AvailableRooms []roomPayload `json:"available_rooms"`
}

type imagePayload struct {
	URL         string `json:"url"`
	Description string `json:"description"`
	IsMain      bool   `json:"is_main"`
}

type roomInfoPayload struct {
	IDRoom        int64    `json:"id_room"`
	Capacity      int      `json:"capacity"`
	PricePerNight float64  `json:"price_per_night"`
	Facilities    []string `json:"facilities"`
}

type hotelInfoPayload struct {
	IDHotel    int64    `json:"id_hotel"`
	Name       string   `json:"name"`
	Stars      int      `json:"stars"`
	Facilities []string `json:"facilities"`
}

type reservationPayload struct {
	IDReservation int64            `json:"id_reservation"`
	FirstNight    string           `json:"first_night"`
	LastNight     string           `json:"last_night"`
	FullName      string           `json:"full_name"`
	Price         float64          `json:"price"`
	BillType      string           `json:"bill_type"`
	Nip           *string          `json:"nip"`
	Status        string           `json:"status"`
	Room          roomInfoPayload  `json:"room"`
	Hotel         hotelInfoPayload `json:"hotel"`
}

type reservationsResponse struct {
	Reservations []reservationPayload `json:"reservations"`
}

type ReservationRequest struct {
	IDRoom     int64  `json:"id_room"`
	IDUser     int64  `json:"id_user"`
	FirstNight string `json:"first_night"`
	LastNight  string `json:"last_night"`
	FullName   string `json:"full_name"`
	BillType   string `json:"bill_type"`
	Nip        string `json:"nip,omitempty"`
}

type cancellationRequest struct {
	IDReservation int64 `json:"id_reservation"`
	IDUser        int64 `json:"id_user"`
}

type addressPayload struct {
	Country  string `json:"country"`
	City     string `json:"city"`
	Street   string `json:"street"`
	Building string `json:"building"`
	ZipCode  string `json:"zip_code"`
}

type hotelPayload struct {
	IDHotel     int64          `json:"id_hotel"`
	Name        string         `json:"name"`
	Stars       int            `json:"stars"`
	GeoLatitude float64        `json:"geo_latitude"`
	GeoLength   float64        `json:"geo_length"`
	Address     addressPayload `json:"address"`
	Facilities  []string       `json:"facilities"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
}

type passwordChangeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type countriesResponse struct {
	Countries []string `json:"countries"`
}

type citiesResponse struct {
	Cities []string `json:"cities"`
}

type roomFacilitiesResponse struct {
	RoomFacilities []string `json:"room_facilities"`
}

type hotelFacilitiesResponse struct {
	HotelFacilities []string `json:"hotel_facilities"`
}

// errorProbe captures the two body shapes the service uses: {"error": ...}
// for rejections and {"message": ...} for normal empty states that share a
// 404 status with real failures.
type errorProbe struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details"`
}
