package domain

// FieldStatus reports how a single listing field came out of extraction.
type FieldStatus int

const (
	// FieldAbsent means the markup had no node for the field.
	FieldAbsent FieldStatus = iota
	// FieldPresent means the field was extracted and parsed.
	FieldPresent
	// FieldMalformed means a node existed but its content was unusable;
	// the field is dropped from the final listing.
	FieldMalformed
)

// Field carries one extracted listing field together with its extraction
// outcome, so "missing from markup" stays distinguishable from "present but
// unparseable". Listings only ever see present values; the other two states
// exist so extraction behavior is inspectable.
type Field[T any] struct {
	value  T
	status FieldStatus
}

// PresentField wraps a successfully extracted value.
func PresentField[T any](value T) Field[T] {
	return Field[T]{value: value, status: FieldPresent}
}

// AbsentField marks a field with no source node.
func AbsentField[T any]() Field[T] {
	return Field[T]{}
}

// MalformedField marks a field whose source node could not be parsed.
func MalformedField[T any]() Field[T] {
	return Field[T]{status: FieldMalformed}
}

// Status returns the extraction outcome.
func (f Field[T]) Status() FieldStatus {
	return f.status
}

// Value returns the extracted value and whether it is usable.
func (f Field[T]) Value() (T, bool) {
	if f.status != FieldPresent {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Ptr returns a pointer to the value for present fields and nil otherwise.
func (f Field[T]) Ptr() *T {
	if f.status != FieldPresent {
		return nil
	}
	value := f.value
	return &value
}

// Listing is one parsed restaurant record from a search results page.
// Name and URL are always set; everything else is best effort and absent
// fields stay at their zero value.
type Listing struct {
	Name               string   `json:"name" yaml:"name"`
	URL                string   `json:"url" yaml:"url"`
	Rating             *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	ReviewCount        *int     `json:"review_count,omitempty" yaml:"review_count,omitempty"`
	SaveCount          *int     `json:"save_count,omitempty" yaml:"save_count,omitempty"`
	Area               string   `json:"area,omitempty" yaml:"area,omitempty"`
	Station            string   `json:"station,omitempty" yaml:"station,omitempty"`
	Distance           string   `json:"distance,omitempty" yaml:"distance,omitempty"`
	Genres             []string `json:"genres,omitempty" yaml:"genres,omitempty"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	LunchPrice         string   `json:"lunch_price,omitempty" yaml:"lunch_price,omitempty"`
	DinnerPrice        string   `json:"dinner_price,omitempty" yaml:"dinner_price,omitempty"`
	HasVPoint          bool     `json:"has_vpoint,omitempty" yaml:"has_vpoint,omitempty"`
	AcceptsReservation bool     `json:"accepts_reservation,omitempty" yaml:"accepts_reservation,omitempty"`
	ImageURLs          []string `json:"image_urls,omitempty" yaml:"image_urls,omitempty"`
}
