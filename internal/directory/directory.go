package directory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"FinTalk/internal/domain/models"
	"FinTalk/pkg/logger"
)

// Directory is the read-only company catalog: an instrument list held in
// memory plus a bleve index over it for name search. Safe for concurrent
// use once built.
type Directory struct {
	index    bleve.Index
	rows     []models.EntityRef
	bySymbol map[string]models.EntityRef
}

type companyDoc struct {
	Name     string `json:"name"`
	NSE      string `json:"nse"`
	BSE      string `json:"bse"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// New builds a directory from the instrument list. An empty indexPath
// keeps the index in memory; otherwise it is opened from disk or created.
func New(indexPath, dataPath string, lgr *logger.Logger) (*Directory, error) {
	rows, err := LoadInstruments(dataPath)
	if err != nil {
		return nil, fmt.Errorf("load instruments: %w", err)
	}
	return fromRows(indexPath, rows, lgr)
}

// NewInMemory builds a directory straight from rows, for tests and
// embedded defaults.
func NewInMemory(rows []models.EntityRef) (*Directory, error) {
	return fromRows("", rows, nil)
}

func fromRows(indexPath string, rows []models.EntityRef, lgr *logger.Logger) (*Directory, error) {
	var (
		index      bleve.Index
		err        error
		needsIndex = true
	)

	if indexPath == "" {
		index, err = bleve.NewMemOnly(buildIndexMapping())
	} else {
		index, err = bleve.Open(indexPath)
		if err == bleve.ErrorIndexPathDoesNotExist {
			index, err = bleve.New(indexPath, buildIndexMapping())
		} else if err == nil {
			needsIndex = false
			if lgr != nil {
				lgr.Info("opened existing company index", logger.String("path", indexPath))
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("company index: %w", err)
	}

	if needsIndex {
		batch := index.NewBatch()
		for i, row := range rows {
			doc := companyDoc{
				Name:     row.Name,
				NSE:      strings.ToLower(row.NSESymbol),
				BSE:      strings.ToLower(row.BSESymbol),
				Sector:   row.Sector,
				Industry: row.Industry,
			}
			if err := batch.Index(strconv.Itoa(i), doc); err != nil {
				return nil, fmt.Errorf("index row %d: %w", i, err)
			}
		}
		if err := index.Batch(batch); err != nil {
			return nil, fmt.Errorf("index batch: %w", err)
		}
		if lgr != nil {
			lgr.Info("company index built", logger.Int("rows", len(rows)))
		}
	}

	bySymbol := make(map[string]models.EntityRef, len(rows)*2)
	for _, row := range rows {
		if row.NSESymbol != "" {
			bySymbol[strings.ToUpper(row.NSESymbol)] = row
		}
		if row.BSESymbol != "" {
			bySymbol[strings.ToUpper(row.BSESymbol)] = row
		}
	}

	return &Directory{index: index, rows: rows, bySymbol: bySymbol}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	text := bleve.NewTextFieldMapping()
	text.Store = false
	text.Index = true
	docMapping.AddFieldMappingsAt("name", text)
	docMapping.AddFieldMappingsAt("nse", text)
	docMapping.AddFieldMappingsAt("bse", text)
	docMapping.AddFieldMappingsAt("sector", text)
	docMapping.AddFieldMappingsAt("industry", text)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// SearchByName returns rows whose name matches the substring, best first.
func (d *Directory) SearchByName(substring string, limit int) []models.EntityRef {
	if substring == "" || limit <= 0 {
		return nil
	}
	sub := strings.ToLower(substring)

	match := bleve.NewMatchQuery(substring)
	match.SetField("name")
	match.SetBoost(3.0)

	prefix := bleve.NewPrefixQuery(sub)
	prefix.SetField("name")
	prefix.SetBoost(2.0)

	wildcard := bleve.NewWildcardQuery("*" + sub + "*")
	wildcard.SetField("name")

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(match, prefix, wildcard))
	req.Size = limit

	res, err := d.index.Search(req)
	if err != nil {
		return nil
	}

	out := make([]models.EntityRef, 0, len(res.Hits))
	for _, hit := range res.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil || i < 0 || i >= len(d.rows) {
			continue
		}
		out = append(out, d.rows[i])
	}
	return out
}

// SearchBySymbol looks up one exact exchange symbol.
func (d *Directory) SearchBySymbol(symbol string) (models.EntityRef, bool) {
	row, ok := d.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	return row, ok
}

// All exposes the full instrument list for fuzzy scoring. Callers must
// treat the slice as read-only.
func (d *Directory) All() []models.EntityRef {
	return d.rows
}

// Close releases the underlying index.
func (d *Directory) Close() error {
	return d.index.Close()
}
