package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/b-shhhh/university-finder-ai/model"
	"github.com/b-shhhh/university-finder-ai/utils/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrUniversityNotFound is returned when no record matches a reference token.
var ErrUniversityNotFound = errors.New("university not found")

// RefKind discriminates the syntactic form of a reference token.
type RefKind int

const (
	// RefSourceID marks tokens that can only be an external source id.
	RefSourceID RefKind = iota
	// RefDatabaseID marks tokens that are syntactically a database id
	// (a non-empty all-digit string). Such a token may still match a
	// record by source id, so lookups always try both.
	RefDatabaseID
)

// Reference is a parsed reference token.
type Reference struct {
	Kind RefKind
	Raw  string
	// DatabaseID is set when Kind is RefDatabaseID.
	DatabaseID uint
}

// ParseReference classifies a reference token. Database ids are numeric
// GORM primary keys, so a token is id-shaped iff it is all digits.
func ParseReference(token string) Reference {
	token = strings.TrimSpace(token)
	if token != "" {
		if n, err := strconv.ParseUint(token, 10, 64); err == nil {
			return Reference{Kind: RefDatabaseID, Raw: token, DatabaseID: uint(n)}
		}
	}
	return Reference{Kind: RefSourceID, Raw: token}
}

// CanonicalAlias returns the preferred public identifier for a record:
// the import-stable source id when present, else the database id.
// New saved-list entries are always written in this form.
func CanonicalAlias(u *model.University) string {
	if u.SourceID != "" {
		return u.SourceID
	}
	return strconv.FormatUint(uint64(u.ID), 10)
}

// IdentityService resolves reference tokens to university records and
// keeps imported records keyed consistently across re-imports.
type IdentityService struct {
	db *gorm.DB
}

// NewIdentityService creates a new identity service
func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// Resolve finds the university referenced by token, matching either the
// source id or, for id-shaped tokens, the database id. When the
// uniqueness invariant has been violated and several records match, the
// one with the lowest database id wins so the result stays
// deterministic instead of failing the request.
func (s *IdentityService) Resolve(token string) (*model.University, error) {
	ref := ParseReference(token)
	if ref.Raw == "" {
		return nil, ErrUniversityNotFound
	}

	cond := s.db.Where("source_id = ?", ref.Raw)
	if ref.Kind == RefDatabaseID {
		cond = cond.Or("id = ?", ref.DatabaseID)
	}

	var u model.University
	if err := s.db.Where(cond).Order("id ASC").First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUniversityNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ResolveMany resolves a batch of tokens with at most two queries: one
// over source ids and one over database ids. Tokens that match nothing
// are simply absent from the returned map. The map is local to the
// call; nothing is cached across requests.
func (s *IdentityService) ResolveMany(tokens []string) (map[string]*model.University, error) {
	resolved := make(map[string]*model.University)
	if len(tokens) == 0 {
		return resolved, nil
	}

	var sourceIDs []string
	var databaseIDs []uint
	seen := make(map[string]bool)
	for _, token := range tokens {
		ref := ParseReference(token)
		if ref.Raw == "" || seen[ref.Raw] {
			continue
		}
		seen[ref.Raw] = true
		// Id-shaped tokens go into both legs: a numeric string is a
		// legal source id too.
		sourceIDs = append(sourceIDs, ref.Raw)
		if ref.Kind == RefDatabaseID {
			databaseIDs = append(databaseIDs, ref.DatabaseID)
		}
	}
	if len(sourceIDs) == 0 {
		return resolved, nil
	}

	cond := s.db.Where("source_id IN ?", sourceIDs)
	if len(databaseIDs) > 0 {
		cond = cond.Or("id IN ?", databaseIDs)
	}

	var universities []model.University
	if err := s.db.Where(cond).Order("id ASC").Find(&universities).Error; err != nil {
		return nil, err
	}

	bySourceID := make(map[string]*model.University)
	byDatabaseID := make(map[uint]*model.University)
	for i := range universities {
		u := &universities[i]
		if u.SourceID != "" {
			if _, ok := bySourceID[u.SourceID]; !ok {
				bySourceID[u.SourceID] = u
			}
		}
		byDatabaseID[u.ID] = u
	}

	for _, token := range tokens {
		ref := ParseReference(token)
		if ref.Raw == "" {
			continue
		}
		if u, ok := bySourceID[ref.Raw]; ok {
			resolved[token] = u
			continue
		}
		if ref.Kind == RefDatabaseID {
			if u, ok := byDatabaseID[ref.DatabaseID]; ok {
				resolved[token] = u
			}
		}
	}
	return resolved, nil
}

// ImportResult reports what an upsert did to the catalog.
type ImportResult int

const (
	ImportCreated ImportResult = iota
	ImportUpdated
)

// ImportRow is one parsed row of imported university data. CSV parsing
// happens upstream; by the time a row reaches the service it is plain
// field data.
type ImportRow struct {
	SourceID    string
	Name        string
	Country     string
	Alpha2      string
	State       string
	City        string
	Website     string
	FlagURL     string
	LogoURL     string
	Courses     []string
	Description string
	// RowNumber is the 1-based position of the row in its source file,
	// used as the discriminator when no explicit source id is supplied.
	RowNumber int
}

// ImportUpsert creates or updates the record for one import row so that
// re-importing the same file is idempotent. Rows are matched by exact
// source id first, then by the legacy derivation (slug without row
// discriminator) to migrate records keyed by the older scheme. A
// matched record keeps its database id and is re-keyed to the current
// source id form.
func (s *IdentityService) ImportUpsert(row ImportRow) (ImportResult, error) {
	sourceID := strings.TrimSpace(row.SourceID)
	if sourceID == "" {
		sourceID = slug.DeriveSourceID(row.Alpha2, row.Name, row.RowNumber)
	}
	legacyID := slug.LegacySourceID(row.Alpha2, row.Name)

	var u model.University
	err := s.db.Where("source_id = ?", sourceID).Order("id ASC").First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) && legacyID != sourceID {
		err = s.db.Where("source_id = ?", legacyID).Order("id ASC").First(&u).Error
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ImportCreated, err
	}

	found := err == nil
	u.SourceID = sourceID
	u.Name = row.Name
	u.Country = row.Country
	u.Alpha2 = strings.ToUpper(row.Alpha2)
	u.State = row.State
	u.City = row.City
	u.Website = row.Website
	u.FlagURL = row.FlagURL
	u.LogoURL = row.LogoURL
	u.Courses = datatypes.NewJSONSlice(dedupeStrings(row.Courses))
	u.Description = row.Description

	if found {
		if err := s.db.Save(&u).Error; err != nil {
			return ImportUpdated, err
		}
		return ImportUpdated, nil
	}
	if err := s.db.Create(&u).Error; err != nil {
		return ImportCreated, err
	}
	return ImportCreated, nil
}

// dedupeStrings drops empty entries and duplicates, preserving the
// first-occurrence order.
func dedupeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
