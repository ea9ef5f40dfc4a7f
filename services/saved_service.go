package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/b-shhhh/university-finder-ai/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when a saved-list operation targets a
	// user that does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmptyReference is returned when no reference token was supplied.
	ErrEmptyReference = errors.New("university reference is required")
)

// SavedService maintains a user's saved-universities list. Entries are
// heterogeneous alias tokens (source ids or database ids recorded at
// different times), so every mutation works on the full alias set of
// the referenced record to keep the list behaving like a set of
// distinct universities.
type SavedService struct {
	db       *gorm.DB
	identity *IdentityService
}

// NewSavedService creates a new saved-universities service
func NewSavedService(db *gorm.DB, identity *IdentityService) *SavedService {
	return &SavedService{db: db, identity: identity}
}

// aliasSet resolves a token to every alias form the matching record can
// be referenced by, plus the canonical alias new entries should use.
// An unresolvable token degrades to being its own single alias; it may
// belong to data that predates the resolution scheme.
func (s *SavedService) aliasSet(token string) (map[string]bool, string, error) {
	u, err := s.identity.Resolve(token)
	if err != nil {
		if errors.Is(err, ErrUniversityNotFound) {
			return map[string]bool{token: true}, token, nil
		}
		return nil, "", err
	}

	canonical := CanonicalAlias(u)
	aliases := map[string]bool{canonical: true, token: true}
	aliases[strconv.FormatUint(uint64(u.ID), 10)] = true
	if u.SourceID != "" {
		aliases[u.SourceID] = true
	}
	return aliases, canonical, nil
}

// Save adds a university to the user's list. Any existing entry that is
// an alias of the same record is removed first, so re-saving under a
// different identifier form never duplicates. The canonical alias is
// appended at the end.
func (s *SavedService) Save(userID uint, token string) ([]string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyReference
	}
	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	aliases, canonical, err := s.aliasSet(token)
	if err != nil {
		return nil, err
	}

	list := make([]string, 0, len(user.SavedUniversities)+1)
	for _, entry := range user.SavedUniversities {
		if !aliases[entry] {
			list = append(list, entry)
		}
	}
	list = append(list, canonical)

	if err := s.persist(userID, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Remove drops every alias of the referenced university from the list.
func (s *SavedService) Remove(userID uint, token string) ([]string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyReference
	}
	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	aliases, _, err := s.aliasSet(token)
	if err != nil {
		return nil, err
	}

	list := make([]string, 0, len(user.SavedUniversities))
	for _, entry := range user.SavedUniversities {
		if !aliases[entry] {
			list = append(list, entry)
		}
	}

	if err := s.persist(userID, list); err != nil {
		return nil, err
	}
	return list, nil
}

// List returns the saved universities in canonical alias form,
// de-duplicated while preserving first-occurrence order. Two stored
// entries that resolve to the same record collapse into one.
func (s *SavedService) List(userID uint) ([]string, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.identity.ResolveMany(user.SavedUniversities)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(user.SavedUniversities))
	seen := make(map[string]bool)
	for _, entry := range user.SavedUniversities {
		alias := entry
		if u, ok := resolved[entry]; ok {
			alias = CanonicalAlias(u)
		}
		if alias == "" || seen[alias] {
			continue
		}
		seen[alias] = true
		out = append(out, alias)
	}
	return out, nil
}

func (s *SavedService) loadUser(userID uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// persist writes only the saved_universities column so the mutation can
// never be blocked by validation of unrelated profile fields.
func (s *SavedService) persist(userID uint, list []string) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("saved_universities", datatypes.NewJSONSlice(list)).Error
}
