package characters_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
	"github.com/KirkDiggler/scum-bot-discord/internal/repositories/characters"
	"github.com/stretchr/testify/suite"
)

type SQLiteRepoTestSuite struct {
	suite.Suite
	path string
	db   *sql.DB
	repo characters.Repository
}

func (s *SQLiteRepoTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "characters.db")
	s.open()
}

func (s *SQLiteRepoTestSuite) TearDownTest() {
	if s.db != nil {
		s.NoError(s.db.Close())
	}
}

func (s *SQLiteRepoTestSuite) open() {
	db, err := characters.OpenSQLiteDB(s.path)
	s.Require().NoError(err)
	repo, err := characters.NewSQLite(context.Background(), db)
	s.Require().NoError(err)
	s.db = db
	s.repo = repo
}

// reopen simulates a process restart against the same file
func (s *SQLiteRepoTestSuite) reopen() {
	s.Require().NoError(s.db.Close())
	s.db = nil
	s.open()
}

func TestSQLiteRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepoTestSuite))
}

func (s *SQLiteRepoTestSuite) TestLoadMissingIsDefault() {
	key := character.Key{ChannelID: "1234", UserID: "5678"}

	char, err := s.repo.Load(context.Background(), key)
	s.Require().NoError(err)
	s.Equal(character.NewCharacter(key), char)
}

func (s *SQLiteRepoTestSuite) TestRoundTripSurvivesRestart() {
	ctx := context.Background()
	char := &character.Character{
		ChannelID: "chan",
		UserID:    "user",
		Attune:    1,
		Command:   2,
		Consort:   3,
		Doctor:    4,
		Hack:      0,
		Helm:      1,
		Rig:       2,
		Scramble:  3,
		Scrap:     4,
		Skulk:     0,
		Study:     1,
		Sway:      2,
	}
	s.Require().NoError(s.repo.Save(ctx, char))

	loaded, err := s.repo.Load(ctx, char.Key())
	s.Require().NoError(err)
	s.Equal(char, loaded)

	s.reopen()

	loaded, err = s.repo.Load(ctx, char.Key())
	s.Require().NoError(err)
	s.Equal(char, loaded)
}

func (s *SQLiteRepoTestSuite) TestSaveOverwrites() {
	ctx := context.Background()
	char := &character.Character{ChannelID: "c", UserID: "u", Hack: 1}
	s.Require().NoError(s.repo.Save(ctx, char))

	char.Hack = 3
	char.Sway = 2
	s.Require().NoError(s.repo.Save(ctx, char))

	var rows int
	s.Require().NoError(s.db.QueryRow("SELECT COUNT(*) FROM characters").Scan(&rows))
	s.Equal(1, rows)

	loaded, err := s.repo.Load(ctx, char.Key())
	s.Require().NoError(err)
	s.Equal(3, loaded.Hack)
	s.Equal(2, loaded.Sway)
}

func (s *SQLiteRepoTestSuite) TestKeysAreIndependent() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, &character.Character{ChannelID: "a", UserID: "x", Skulk: 4}))
	s.Require().NoError(s.repo.Save(ctx, &character.Character{ChannelID: "b", UserID: "x", Skulk: 1}))

	a, err := s.repo.Load(ctx, character.Key{ChannelID: "a", UserID: "x"})
	s.Require().NoError(err)
	b, err := s.repo.Load(ctx, character.Key{ChannelID: "b", UserID: "x"})
	s.Require().NoError(err)

	s.Equal(4, a.Skulk)
	s.Equal(1, b.Skulk)
}

func (s *SQLiteRepoTestSuite) TestOutOfRangeRowsAreClamped() {
	_, err := s.db.Exec(`INSERT INTO characters (channel_id, user_id, hack, sway) VALUES ('c', 'u', 9, -1)`)
	s.Require().NoError(err)

	loaded, err := s.repo.Load(context.Background(), character.Key{ChannelID: "c", UserID: "u"})
	s.Require().NoError(err)
	s.Equal(character.MaxRating, loaded.Hack)
	s.Equal(character.MinRating, loaded.Sway)
}

func (s *SQLiteRepoTestSuite) TestSaveRejectsInvalid() {
	err := s.repo.Save(context.Background(), &character.Character{ChannelID: "c", UserID: "u", Helm: -1})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *SQLiteRepoTestSuite) TestClosedHandleIsStorageError() {
	ctx := context.Background()
	s.Require().NoError(s.db.Close())
	s.db = nil

	_, err := s.repo.Load(ctx, character.Key{ChannelID: "c", UserID: "u"})
	s.True(dnderr.IsStorage(err))

	err = s.repo.Save(ctx, &character.Character{ChannelID: "c", UserID: "u"})
	s.True(dnderr.IsStorage(err))

	s.True(dnderr.IsStorage(s.repo.Ping(ctx)))
}

func (s *SQLiteRepoTestSuite) TestMigrationsAreIdempotent() {
	_, err := characters.NewSQLite(context.Background(), s.db)
	s.NoError(err)
}

func TestOpenSQLiteDB_RequiresPath(t *testing.T) {
	_, err := characters.OpenSQLiteDB("  ")
	if err == nil {
		t.Fatal("expected error for empty path")
	}
}
