package engine

import (
	"bytes"
	"html/template"
	"strconv"

	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

// placeholder stands in for any listing field missing from the data store.
const placeholder = "N/A"

// subjectPrefix is prepended to the listing title in the subject and heading.
const subjectPrefix = "Update on Your Favorite Listing: "

var bodyTmpl = template.Must(template.New("listing").Parse(`
<h1>{{.Heading}}</h1>
<p>Check out the latest details:</p>
<ul>
  <li>Price: €{{.PossiblePrice}}</li>
  <li>Reserved Price: €{{.ReservedPrice}}</li>
  <li>Delivery Price: €{{.DeliveryPrice}}</li>
  <li>Mileage: {{.Mileage}} km</li>
  <li>Fuel: {{.Fuel}}</li>
  <li>Transmission: {{.Transmission}}</li>
  <li>Engine Size: {{.EngineSize}} kW</li>
  <li>VIN: {{.VIN}}</li>
  <li>Color: {{.Color}}</li>
  <li>Registration Date: {{.FirstReg}}</li>
  <li>Delivery Window: {{.DeliveryWindowStart}} to {{.DeliveryWindowEnd}}</li>
</ul>
<p>View the listing <a href="{{.URL}}">here</a>.</p>
`))

// bodyFields holds every template value already formatted as text.
type bodyFields struct {
	Heading             string
	URL                 string
	PossiblePrice       string
	ReservedPrice       string
	DeliveryPrice       string
	Mileage             string
	Fuel                string
	Transmission        string
	EngineSize          string
	VIN                 string
	Color               string
	FirstReg            string
	DeliveryWindowStart string
	DeliveryWindowEnd   string
}

// RenderMessage builds the subject and HTML body announcing the listing's
// current state. Missing fields render as "N/A".
func RenderMessage(l *domain.ListingSnapshot) (domain.RenderedMessage, error) {
	subject := subjectPrefix + str(l.Title)

	f := bodyFields{
		Heading:             subject,
		URL:                 str(l.URL),
		PossiblePrice:       num(l.PossiblePrice),
		ReservedPrice:       num(l.ReservedPrice),
		DeliveryPrice:       num(l.DeliveryPrice),
		Mileage:             num(l.Mileage),
		Fuel:                str(l.Fuel),
		Transmission:        str(l.Transmission),
		EngineSize:          num(l.EngineSize),
		VIN:                 str(l.VIN),
		Color:               str(l.Color),
		FirstReg:            str(l.FirstReg),
		DeliveryWindowStart: str(l.DeliveryWindowStart),
		DeliveryWindowEnd:   str(l.DeliveryWindowEnd),
	}

	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, f); err != nil {
		return domain.RenderedMessage{}, err
	}

	return domain.RenderedMessage{Subject: subject, Body: buf.String()}, nil
}

func str(s *string) string {
	if s == nil || *s == "" {
		return placeholder
	}
	return *s
}

func num(v *float64) string {
	if v == nil {
		return placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
