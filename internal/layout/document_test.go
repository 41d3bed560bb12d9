package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatlab/internal/scene"
)

func TestAlphabeticName(t *testing.T) {
	tests := []struct {
		index int
		name  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, AlphabeticName(tt.index))
		})
	}
}

func TestRowTableNextNameContinuesSequence(t *testing.T) {
	table := NewRowTable(Row{ID: "r1", Name: "A"}, Row{ID: "r2", Name: "B"})
	assert.Equal(t, "C", table.NextName())

	r := table.AddNext()
	assert.Equal(t, "C", r.Name)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "D", table.NextName())
}

func TestDocumentRoundTrip(t *testing.T) {
	s := scene.New()
	seat := scene.NewObject(scene.KindSeat)
	seat.RowID = "r1"
	seat.SeatNumber = "1"
	seat.Category = "c1"
	seat.Status = scene.StatusAvailable
	require.NoError(t, s.Add(seat))

	rows := []Row{{ID: "r1", Name: "A", ShowLabelLeft: true}}
	cats := []Category{{ID: "c1", Name: "VIP", Color: "#aa00ff", Price: 120}}

	data, err := EncodeDocument(BuildDocument(s, rows, cats))
	require.NoError(t, err)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)

	assert.Equal(t, DocumentType, doc.Type)
	assert.Equal(t, rows, doc.Rows)
	assert.Equal(t, cats, doc.Categories)
	require.Len(t, doc.Canvas.Objects, 1)
	assert.Equal(t, seat.ID, doc.Canvas.Objects[0].ID)
	assert.Equal(t, "1", doc.Canvas.Objects[0].SeatNumber)
}

func TestDecodeDocumentAcceptsLegacyBareSnapshot(t *testing.T) {
	s := scene.New()
	zone := scene.NewObject(scene.KindZone)
	zone.Width, zone.Height = 100, 100
	require.NoError(t, s.Add(zone))

	bare, err := json.Marshal(s.TakeSnapshot())
	require.NoError(t, err)

	doc, err := DecodeDocument(bare)
	require.NoError(t, err)
	assert.Equal(t, DocumentType, doc.Type)
	assert.Empty(t, doc.Rows)
	assert.Empty(t, doc.Categories)
	require.Len(t, doc.Canvas.Objects, 1)
	assert.Equal(t, zone.ID, doc.Canvas.Objects[0].ID)
}

func TestDecodeDocumentRejectsGarbage(t *testing.T) {
	for name, input := range map[string]string{
		"not json":     "][",
		"wrong shape":  `{"hello":"world"}`,
		"number":       `42`,
		"empty string": ``,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(input))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestCategoryIndex(t *testing.T) {
	idx := CategoryIndex([]Category{{ID: "a", Price: 1}, {ID: "b", Price: 2}})
	assert.Equal(t, 2.0, idx["b"].Price)
	_, ok := idx["missing"]
	assert.False(t, ok)
}
