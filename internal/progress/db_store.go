package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/learnpath/internal/database"
)

// MySQL error numbers that mean the transaction lost a race and may be retried by the caller.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// dialect holds the statements whose syntax differs between MySQL and SQLite.
type dialect struct {
	insertIgnore     string
	upsertVideo      string
	upsertPreference string
}

var mysqlDialect = dialect{
	insertIgnore: "INSERT IGNORE",
	upsertVideo: "INSERT INTO video_progress (user_id, collection_id, step_id, video_id, watched_duration, completed, time_spent) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?) " +
		"ON DUPLICATE KEY UPDATE watched_duration = VALUES(watched_duration), completed = VALUES(completed), " +
		"time_spent = time_spent + VALUES(time_spent)",
	upsertPreference: "INSERT INTO user_preferences (user_id, pref_key, pref_value) VALUES (?, ?, ?) " +
		"ON DUPLICATE KEY UPDATE pref_value = VALUES(pref_value)",
}

var sqliteDialect = dialect{
	insertIgnore: "INSERT OR IGNORE",
	upsertVideo: "INSERT INTO video_progress (user_id, collection_id, step_id, video_id, watched_duration, completed, time_spent) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?) " +
		"ON CONFLICT (user_id, collection_id, step_id, video_id) DO UPDATE SET watched_duration = excluded.watched_duration, " +
		"completed = excluded.completed, time_spent = video_progress.time_spent + excluded.time_spent",
	upsertPreference: "INSERT INTO user_preferences (user_id, pref_key, pref_value) VALUES (?, ?, ?) " +
		"ON CONFLICT (user_id, pref_key) DO UPDATE SET pref_value = excluded.pref_value",
}

// DBStore implements Store on MySQL or SQLite.
// Each primitive is a single statement or a short transaction over its own rows.
type DBStore struct {
	db      *sqlx.DB
	dialect dialect
	newID   func() string
}

// NewDBStore creates a DBStore for the driver db was opened with.
func NewDBStore(db *sqlx.DB) (*DBStore, error) {
	var d dialect
	switch db.DriverName() {
	case database.DriverMySQL:
		d = mysqlDialect
	case database.DriverSQLite:
		d = sqliteDialect
	default:
		return nil, fmt.Errorf("unsupported database driver %q", db.DriverName())
	}
	return &DBStore{db: db, dialect: d, newID: uuid.NewString}, nil
}

type collectionRow struct {
	CollectionID string `db:"collection_id"`
	EnrolledAt   int64  `db:"enrolled_at"`
	Bookmarked   bool   `db:"bookmarked"`
}

type stepRow struct {
	CollectionID string `db:"collection_id"`
	StepID       string `db:"step_id"`
}

type videoRow struct {
	CollectionID    string  `db:"collection_id"`
	StepID          string  `db:"step_id"`
	VideoID         string  `db:"video_id"`
	WatchedDuration float64 `db:"watched_duration"`
	Completed       bool    `db:"completed"`
	Bookmarked      bool    `db:"bookmarked"`
	TimeSpent       float64 `db:"time_spent"`
}

type noteRow struct {
	ID              string        `db:"id"`
	CollectionID    string        `db:"collection_id"`
	StepID          string        `db:"step_id"`
	VideoID         string        `db:"video_id"`
	PositionSeconds float64       `db:"position_seconds"`
	Content         string        `db:"content"`
	CreatedAt       int64         `db:"created_at"`
	UpdatedAt       sql.NullInt64 `db:"updated_at"`
}

func (r noteRow) toNote() Note {
	n := Note{
		ID:        r.ID,
		Timestamp: r.PositionSeconds,
		Content:   r.Content,
		CreatedAt: fromMillis(r.CreatedAt),
	}
	if r.UpdatedAt.Valid {
		updatedAt := fromMillis(r.UpdatedAt.Int64)
		n.UpdatedAt = &updatedAt
	}
	return n
}

type preferenceRow struct {
	Key   string `db:"pref_key"`
	Value string `db:"pref_value"`
}

const (
	selectCollections = "SELECT collection_id, enrolled_at, bookmarked FROM collection_progress " +
		"WHERE user_id = ? AND (? = '' OR collection_id = ?) ORDER BY id"
	selectSteps = "SELECT collection_id, step_id FROM step_progress " +
		"WHERE user_id = ? AND (? = '' OR collection_id = ?) ORDER BY id"
	selectVideos = "SELECT collection_id, step_id, video_id, watched_duration, completed, bookmarked, time_spent FROM video_progress " +
		"WHERE user_id = ? AND (? = '' OR collection_id = ?) ORDER BY id"
	selectNotes = "SELECT id, collection_id, step_id, video_id, position_seconds, content, created_at, updated_at FROM video_notes " +
		"WHERE user_id = ? AND (? = '' OR collection_id = ?) ORDER BY seq"
)

// GetUserProgress implements Store.
func (s *DBStore) GetUserProgress(ctx context.Context, userID string) (UserProgress, error) {
	agg, err := s.loadAggregate(ctx, s.db, userID, "")
	if err != nil {
		return UserProgress{}, err
	}

	var achievements []string
	if err := s.db.SelectContext(ctx, &achievements,
		"SELECT achievement_id FROM user_achievements WHERE user_id = ? ORDER BY achievement_id", userID); err != nil {
		return UserProgress{}, fmt.Errorf("load achievements: %w", err)
	}
	for _, a := range achievements {
		agg.achievements[a] = struct{}{}
	}

	var preferences []preferenceRow
	if err := s.db.SelectContext(ctx, &preferences,
		"SELECT pref_key, pref_value FROM user_preferences WHERE user_id = ?", userID); err != nil {
		return UserProgress{}, fmt.Errorf("load preferences: %w", err)
	}
	for _, p := range preferences {
		agg.preferences[p.Key] = p.Value
	}

	return agg.snapshot(), nil
}

// GetCollection implements Store.
func (s *DBStore) GetCollection(ctx context.Context, userID, collectionID string) (CollectionProgress, error) {
	agg, err := s.loadAggregate(ctx, s.db, userID, collectionID)
	if err != nil {
		return CollectionProgress{}, err
	}
	c, err := agg.collection(collectionID)
	if err != nil {
		return CollectionProgress{}, err
	}
	return c.snapshot(), nil
}

// InsertCollectionIfAbsent implements Store.
func (s *DBStore) InsertCollectionIfAbsent(ctx context.Context, userID, collectionID string, enrolledAt time.Time) (CollectionProgress, error) {
	if _, err := s.db.ExecContext(ctx,
		s.dialect.insertIgnore+" INTO collection_progress (user_id, collection_id, enrolled_at, bookmarked) VALUES (?, ?, ?, ?)",
		userID, collectionID, enrolledAt.UnixMilli(), false); err != nil {
		return CollectionProgress{}, fmt.Errorf("insert collection progress: %w", translateError(err))
	}
	return s.GetCollection(ctx, userID, collectionID)
}

// UpsertVideoProgress implements Store.
func (s *DBStore) UpsertVideoProgress(ctx context.Context, key VideoKey, update VideoUpdate) (VideoProgress, error) {
	var vp VideoProgress
	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := requireEnrollment(ctx, tx, key.UserID, key.CollectionID); err != nil {
			return err
		}
		if err := s.ensureStep(ctx, tx, key); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.dialect.upsertVideo,
			key.UserID, key.CollectionID, key.StepID, key.VideoID,
			update.WatchedDuration, update.Completed, update.TimeSpentDelta); err != nil {
			return fmt.Errorf("upsert video progress: %w", translateError(err))
		}

		var err error
		vp, err = loadVideo(ctx, tx, key)
		return err
	})
	return vp, err
}

// InsertNote implements Store.
func (s *DBStore) InsertNote(ctx context.Context, key VideoKey, note Note) (Note, error) {
	note.ID = s.newID()
	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := requireEnrollment(ctx, tx, key.UserID, key.CollectionID); err != nil {
			return err
		}
		if err := s.ensureVideo(ctx, tx, key); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO video_notes (id, user_id, collection_id, step_id, video_id, position_seconds, content, created_at) "+
				"VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			note.ID, key.UserID, key.CollectionID, key.StepID, key.VideoID,
			note.Timestamp, note.Content, note.CreatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("insert note: %w", translateError(err))
		}
		return nil
	})
	if err != nil {
		return Note{}, err
	}
	note.UpdatedAt = nil
	return note, nil
}

// UpdateNote implements Store.
func (s *DBStore) UpdateNote(ctx context.Context, key NoteKey, content string, updatedAt time.Time) (Note, error) {
	var note Note
	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := requireEnrollment(ctx, tx, key.UserID, key.CollectionID); err != nil {
			return err
		}

		var row noteRow
		err := tx.GetContext(ctx, &row,
			"SELECT id, collection_id, step_id, video_id, position_seconds, content, created_at, updated_at FROM video_notes "+
				"WHERE id = ? AND user_id = ? AND collection_id = ? AND step_id = ? AND video_id = ?",
			key.NoteID, key.UserID, key.CollectionID, key.StepID, key.VideoID)
		if errors.Is(err, sql.ErrNoRows) {
			return noteNotFound(key)
		}
		if err != nil {
			return fmt.Errorf("load note: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE video_notes SET content = ?, updated_at = ? WHERE id = ?",
			content, updatedAt.UnixMilli(), key.NoteID); err != nil {
			return fmt.Errorf("update note: %w", translateError(err))
		}

		row.Content = content
		row.UpdatedAt = sql.NullInt64{Int64: updatedAt.UnixMilli(), Valid: true}
		note = row.toNote()
		return nil
	})
	return note, err
}

// DeleteNote implements Store.
func (s *DBStore) DeleteNote(ctx context.Context, key NoteKey) error {
	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := requireEnrollment(ctx, tx, key.UserID, key.CollectionID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			"DELETE FROM video_notes WHERE id = ? AND user_id = ? AND collection_id = ? AND step_id = ? AND video_id = ?",
			key.NoteID, key.UserID, key.CollectionID, key.StepID, key.VideoID)
		if err != nil {
			return fmt.Errorf("delete note: %w", translateError(err))
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get deleted note count: %w", err)
		}
		if affected == 0 {
			return noteNotFound(key)
		}
		return nil
	})
}

// ToggleCollectionBookmark implements Store.
func (s *DBStore) ToggleCollectionBookmark(ctx context.Context, userID, collectionID string) (bool, error) {
	var bookmarked bool
	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE collection_progress SET bookmarked = NOT bookmarked WHERE user_id = ? AND collection_id = ?",
			userID, collectionID)
		if err != nil {
			return fmt.Errorf("toggle collection bookmark: %w", translateError(err))
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get toggled collection count: %w", err)
		}
		if affected == 0 {
			return notEnrolled(userID, collectionID)
		}

		if err := tx.GetContext(ctx, &bookmarked,
			"SELECT bookmarked FROM collection_progress WHERE user_id = ? AND collection_id = ?",
			userID, collectionID); err != nil {
			return fmt.Errorf("load collection bookmark: %w", err)
		}
		return nil
	})
	return bookmarked, err
}

// ToggleVideoBookmark implements Store.
func (s *DBStore) ToggleVideoBookmark(ctx context.Context, key VideoKey) (bool, error) {
	var bookmarked bool
	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := requireEnrollment(ctx, tx, key.UserID, key.CollectionID); err != nil {
			return err
		}
		if err := s.ensureVideo(ctx, tx, key); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE video_progress SET bookmarked = NOT bookmarked WHERE user_id = ? AND collection_id = ? AND step_id = ? AND video_id = ?",
			key.UserID, key.CollectionID, key.StepID, key.VideoID); err != nil {
			return fmt.Errorf("toggle video bookmark: %w", translateError(err))
		}
		if err := tx.GetContext(ctx, &bookmarked,
			"SELECT bookmarked FROM video_progress WHERE user_id = ? AND collection_id = ? AND step_id = ? AND video_id = ?",
			key.UserID, key.CollectionID, key.StepID, key.VideoID); err != nil {
			return fmt.Errorf("load video bookmark: %w", err)
		}
		return nil
	})
	return bookmarked, err
}

// SetPreference implements Store.
func (s *DBStore) SetPreference(ctx context.Context, userID, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.upsertPreference, userID, key, value); err != nil {
		return fmt.Errorf("upsert preference: %w", translateError(err))
	}
	return nil
}

// AddAchievement implements Store.
func (s *DBStore) AddAchievement(ctx context.Context, userID, achievementID string, grantedAt time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		s.dialect.insertIgnore+" INTO user_achievements (user_id, achievement_id, granted_at) VALUES (?, ?, ?)",
		userID, achievementID, grantedAt.UnixMilli()); err != nil {
		return fmt.Errorf("insert achievement: %w", translateError(err))
	}
	return nil
}

func (s *DBStore) ensureStep(ctx context.Context, tx *sqlx.Tx, key VideoKey) error {
	if _, err := tx.ExecContext(ctx,
		s.dialect.insertIgnore+" INTO step_progress (user_id, collection_id, step_id) VALUES (?, ?, ?)",
		key.UserID, key.CollectionID, key.StepID); err != nil {
		return fmt.Errorf("insert step progress: %w", translateError(err))
	}
	return nil
}

func (s *DBStore) ensureVideo(ctx context.Context, tx *sqlx.Tx, key VideoKey) error {
	if err := s.ensureStep(ctx, tx, key); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		s.dialect.insertIgnore+" INTO video_progress (user_id, collection_id, step_id, video_id) VALUES (?, ?, ?, ?)",
		key.UserID, key.CollectionID, key.StepID, key.VideoID); err != nil {
		return fmt.Errorf("insert video progress: %w", translateError(err))
	}
	return nil
}

func (s *DBStore) loadAggregate(ctx context.Context, q sqlx.QueryerContext, userID, collectionID string) (*userAggregate, error) {
	agg := newUserAggregate(userID)

	var collections []collectionRow
	if err := sqlx.SelectContext(ctx, q, &collections, selectCollections, userID, collectionID, collectionID); err != nil {
		return nil, fmt.Errorf("load collection progress: %w", err)
	}
	if len(collections) == 0 {
		return agg, nil
	}
	for _, c := range collections {
		agg.insertCollection(c.CollectionID, fromMillis(c.EnrolledAt)).bookmarked = c.Bookmarked
	}

	var steps []stepRow
	if err := sqlx.SelectContext(ctx, q, &steps, selectSteps, userID, collectionID, collectionID); err != nil {
		return nil, fmt.Errorf("load step progress: %w", err)
	}
	for _, st := range steps {
		if c, ok := agg.collections[st.CollectionID]; ok {
			c.ensureStep(st.StepID)
		}
	}

	var videos []videoRow
	if err := sqlx.SelectContext(ctx, q, &videos, selectVideos, userID, collectionID, collectionID); err != nil {
		return nil, fmt.Errorf("load video progress: %w", err)
	}
	for _, v := range videos {
		c, ok := agg.collections[v.CollectionID]
		if !ok {
			continue
		}
		vn := c.ensureVideo(v.StepID, v.VideoID)
		vn.watchedDuration = v.WatchedDuration
		vn.completed = v.Completed
		vn.bookmarked = v.Bookmarked
		vn.timeSpent = v.TimeSpent
	}

	var notes []noteRow
	if err := sqlx.SelectContext(ctx, q, &notes, selectNotes, userID, collectionID, collectionID); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	for _, n := range notes {
		c, ok := agg.collections[n.CollectionID]
		if !ok {
			continue
		}
		c.ensureVideo(n.StepID, n.VideoID).appendNote(n.toNote())
	}
	return agg, nil
}

func requireEnrollment(ctx context.Context, tx *sqlx.Tx, userID, collectionID string) error {
	var enrolledAt int64
	err := tx.GetContext(ctx, &enrolledAt,
		"SELECT enrolled_at FROM collection_progress WHERE user_id = ? AND collection_id = ?",
		userID, collectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return notEnrolled(userID, collectionID)
	}
	if err != nil {
		return fmt.Errorf("load enrollment: %w", err)
	}
	return nil
}

func loadVideo(ctx context.Context, tx *sqlx.Tx, key VideoKey) (VideoProgress, error) {
	var row videoRow
	if err := tx.GetContext(ctx, &row,
		"SELECT collection_id, step_id, video_id, watched_duration, completed, bookmarked, time_spent FROM video_progress "+
			"WHERE user_id = ? AND collection_id = ? AND step_id = ? AND video_id = ?",
		key.UserID, key.CollectionID, key.StepID, key.VideoID); err != nil {
		return VideoProgress{}, fmt.Errorf("load video progress: %w", err)
	}

	var notes []noteRow
	if err := tx.SelectContext(ctx, &notes,
		"SELECT id, collection_id, step_id, video_id, position_seconds, content, created_at, updated_at FROM video_notes "+
			"WHERE user_id = ? AND collection_id = ? AND step_id = ? AND video_id = ? ORDER BY seq",
		key.UserID, key.CollectionID, key.StepID, key.VideoID); err != nil {
		return VideoProgress{}, fmt.Errorf("load notes: %w", err)
	}

	vp := VideoProgress{
		VideoID:         row.VideoID,
		WatchedDuration: row.WatchedDuration,
		Completed:       row.Completed,
		Bookmarked:      row.Bookmarked,
		TimeSpent:       row.TimeSpent,
	}
	for _, n := range notes {
		vp.Notes = append(vp.Notes, n.toNote())
	}
	return vp, nil
}

// translateError maps lock contention reported by MySQL to ErrConflict.
func translateError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDeadlock, mysqlErrLockWaitTimeout:
			return &Error{Kind: ErrConflict, Message: mysqlErr.Message}
		}
	}
	return err
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
