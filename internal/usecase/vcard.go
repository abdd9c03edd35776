package usecase

import (
	"bytes"
	"fmt"
	"strings"

	"go-agency-backoffice/internal/domain"

	"github.com/emersion/go-vcard"
)

// renderVCard encodes a candidate as a vCard 4.0 payload. Empty fields are
// omitted rather than emitted blank.
func renderVCard(c *domain.Candidate) ([]byte, error) {
	card := make(vcard.Card)

	additional := strings.TrimSpace(strings.Join(nonEmpty(c.SecondName, c.ThirdName), " "))
	card.AddName(&vcard.Name{
		FamilyName:     c.LastName,
		GivenName:      c.FirstName,
		AdditionalName: additional,
	})
	card.SetValue(vcard.FieldFormattedName, c.FullName())

	if c.Email != "" {
		card.Add(vcard.FieldEmail, &vcard.Field{
			Value:  c.Email,
			Params: vcard.Params{vcard.ParamType: {"INTERNET"}},
		})
	}
	if c.CallPhoneNumber != "" {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  c.CallPhoneNumber,
			Params: vcard.Params{vcard.ParamType: {vcard.TypeCell}},
		})
	}
	if c.WhatsappPhoneNumber != "" {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  c.WhatsappPhoneNumber,
			Params: vcard.Params{vcard.ParamType: {vcard.TypeVoice}},
		})
	}
	if c.Address != "" || c.Country != "" {
		card.AddAddress(&vcard.Address{
			Field:         &vcard.Field{Params: vcard.Params{vcard.ParamType: {vcard.TypeHome}}},
			StreetAddress: c.Address,
			Country:       c.Country,
		})
	}
	if c.Birthday != nil && !c.Birthday.IsZero() {
		card.SetValue(vcard.FieldBirthday, c.Birthday.Format("2006-01-02"))
	}

	vcard.ToV4(card)

	var buf bytes.Buffer
	if err := vcard.NewEncoder(&buf).Encode(card); err != nil {
		return nil, fmt.Errorf("failed to encode vcard: %w", err)
	}
	return buf.Bytes(), nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
