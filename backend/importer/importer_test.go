package importer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"readquest/backend/models"
	"readquest/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memStore struct {
	terms map[string]*models.GlossaryTerm
}

func (m *memStore) UpsertTerm(_ context.Context, term *models.GlossaryTerm) (bool, error) {
	key := term.Term + "|" + term.Category
	_, exists := m.terms[key]
	m.terms[key] = term
	return !exists, nil
}

func newStore() *memStore {
	return &memStore{terms: map[string]*models.GlossaryTerm{}}
}

func TestImportCSV(t *testing.T) {
	store := newStore()
	im := New(store, DefaultImportConfig(), utils.NewNopLogger())

	data := strings.Join([]string{
		"term,definition,category,example,chapter",
		"bravo,sgherro al servizio di un signore,personaggi,I bravi di don Rodrigo,1",
		"grida,bando pubblico,storia,,",
		",senza termine,storia,,",
		"",
		"bravo,sicario,personaggi,,1",
		"monatto,addetto ai morti di peste,storia,,not-a-number",
	}, "\n")

	res, err := im.Import(context.Background(), "glossario.csv", strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalProcessed)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "Row 4")

	bravo := store.terms["bravo|personaggi"]
	require.NotNil(t, bravo)
	assert.Equal(t, "sicario", bravo.Definition)
	require.NotNil(t, bravo.ChapterRef)
	assert.Equal(t, 1, *bravo.ChapterRef)
	assert.Nil(t, store.terms["grida|storia"].ChapterRef)
}

func TestImportExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"term", "definition", "category"},
		{"Azzeccagarbugli", "avvocato da poco", ""},
		{"lazzaretto", "ricovero per appestati", "luoghi"},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	store := newStore()
	im := New(store, DefaultImportConfig(), utils.NewNopLogger())
	res, err := im.Import(context.Background(), "Glossario.XLSX", &buf)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Empty(t, res.Errors)
	assert.Contains(t, store.terms, "Azzeccagarbugli|general")
	assert.Contains(t, store.terms, "lazzaretto|luoghi")
}

func TestImportRejectsUnknownFormat(t *testing.T) {
	im := New(newStore(), DefaultImportConfig(), utils.NewNopLogger())
	_, err := im.Import(context.Background(), "terms.json", strings.NewReader("{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImportRejectsCorruptWorkbook(t *testing.T) {
	im := New(newStore(), DefaultImportConfig(), utils.NewNopLogger())
	_, err := im.Import(context.Background(), "terms.xlsx", strings.NewReader("not a zip"))
	assert.ErrorIs(t, err, ErrUnreadableFile)
}
