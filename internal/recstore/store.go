package recstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLStore handles durable record storage using various database backends.
type SQLStore struct {
	db         *sql.DB
	backend    schema.StoreBackend
	driverName string
	connStr    string
}

var _ contract.RecordStore = &SQLStore{} // Compile-time check

// NewRecordStore initializes and returns a new RecordStore based on the
// backend type.
func NewRecordStore(backend schema.StoreBackend, connStr string) (contract.RecordStore, error) {
	if backend == schema.MemoryBackend {
		return NewMemoryStore(), nil
	}

	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or memory", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schemas
	if err := createRecordTables(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLStore{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// createRecordTables creates the roster and work-record tables.
func createRecordTables(db *sql.DB, backend schema.StoreBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{dogsTable, getCreateDogsQuery(backend)},
		{recordsTable, getCreateRecordsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateDogsQuery returns the CREATE TABLE query for the roster table.
func getCreateDogsQuery(backend schema.StoreBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dog_id VARCHAR(64) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				age INT NOT NULL,
				role VARCHAR(50) NOT NULL
			);
		`, dogsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dog_id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				age INT NOT NULL,
				role TEXT NOT NULL
			);
		`, dogsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dog_id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				age INTEGER NOT NULL,
				role TEXT NOT NULL
			);
		`, dogsTable)
	}
}

// getCreateRecordsQuery returns the CREATE TABLE query for the work-record
// table. Dates are stored as YYYY-MM-DD text so date ordering matches string
// ordering across backends.
func getCreateRecordsQuery(backend schema.StoreBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dog_id VARCHAR(64) NOT NULL,
				date VARCHAR(10) NOT NULL,
				worked TINYINT NOT NULL,
				distance DOUBLE NOT NULL,
				tag VARCHAR(255) NOT NULL DEFAULT '',
				PRIMARY KEY (dog_id, date)
			);
		`, recordsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dog_id TEXT NOT NULL,
				date VARCHAR(10) NOT NULL,
				worked SMALLINT NOT NULL,
				distance DOUBLE PRECISION NOT NULL,
				tag TEXT NOT NULL DEFAULT '',
				PRIMARY KEY (dog_id, date)
			);
		`, recordsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dog_id TEXT NOT NULL,
				date TEXT NOT NULL,
				worked INTEGER NOT NULL,
				distance REAL NOT NULL,
				tag TEXT NOT NULL DEFAULT '',
				PRIMARY KEY (dog_id, date)
			);
		`, recordsTable)
	}
}

// Roster returns every dog, sorted by ID.
func (st *SQLStore) Roster(ctx context.Context) ([]schema.Dog, error) {
	query := fmt.Sprintf(`SELECT dog_id, name, age, role FROM %s ORDER BY dog_id`, dogsTable)
	rows, err := st.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var roster []schema.Dog
	for rows.Next() {
		var dog schema.Dog
		if err := rows.Scan(&dog.ID, &dog.Name, &dog.Age, &dog.Role); err != nil {
			return nil, fmt.Errorf("failed to scan dog row: %w", err)
		}
		roster = append(roster, dog)
	}
	return roster, rows.Err()
}

// History returns every record for one dog, ordered by date ascending.
func (st *SQLStore) History(ctx context.Context, dogID string) ([]schema.WorkRecord, error) {
	query := fmt.Sprintf(`SELECT dog_id, date, worked, distance, tag FROM %s WHERE dog_id = %s ORDER BY date`,
		recordsTable, st.placeholder(1))
	rows, err := st.db.QueryContext(ctx, query, dogID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for dog %s: %w", dogID, err)
	}
	defer func() { _ = rows.Close() }()

	var history []schema.WorkRecord
	for rows.Next() {
		var rec schema.WorkRecord
		var dateStr string
		var worked int
		if err := rows.Scan(&rec.DogID, &dateStr, &worked, &rec.Distance, &rec.Tag); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		rec.Date, err = schema.ParseDay(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt date %q for dog %s: %w", dateStr, dogID, err)
		}
		rec.Worked = worked != 0
		history = append(history, rec)
	}
	return history, rows.Err()
}

// UpsertDog inserts the dog or updates its name, age and role.
func (st *SQLStore) UpsertDog(ctx context.Context, dog schema.Dog) error {
	var query string
	switch st.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (dog_id, name, age, role) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE name = new.name, age = new.age, role = new.role`, dogsTable)

	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (dog_id, name, age, role) VALUES ($1, $2, $3, $4)
			ON CONFLICT (dog_id) DO UPDATE SET name = EXCLUDED.name, age = EXCLUDED.age, role = EXCLUDED.role`, dogsTable)

	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (dog_id, name, age, role) VALUES (?, ?, ?, ?)`, dogsTable)
	}

	if _, err := st.db.ExecContext(ctx, query, dog.ID, dog.Name, dog.Age, dog.Role); err != nil {
		return fmt.Errorf("failed to upsert dog %s: %w", dog.ID, err)
	}
	return nil
}

// UpsertRecord inserts or replaces the record for (DogID, Date). It reports
// whether a new row was created.
func (st *SQLStore) UpsertRecord(ctx context.Context, rec schema.WorkRecord) (bool, error) {
	dateStr := schema.FormatDay(rec.Date)
	worked := 0
	if rec.Worked {
		worked = 1
	}

	existsQuery := fmt.Sprintf(`SELECT 1 FROM %s WHERE dog_id = %s AND date = %s`,
		recordsTable, st.placeholder(1), st.placeholder(2))
	var one int
	err := st.db.QueryRowContext(ctx, existsQuery, rec.DogID, dateStr).Scan(&one)
	created := errors.Is(err, sql.ErrNoRows)
	if err != nil && !created {
		return false, fmt.Errorf("failed to check record for dog %s on %s: %w", rec.DogID, dateStr, err)
	}

	var query string
	switch st.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (dog_id, date, worked, distance, tag) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE worked = new.worked, distance = new.distance, tag = new.tag`, recordsTable)

	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (dog_id, date, worked, distance, tag) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (dog_id, date) DO UPDATE SET worked = EXCLUDED.worked, distance = EXCLUDED.distance, tag = EXCLUDED.tag`, recordsTable)

	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (dog_id, date, worked, distance, tag) VALUES (?, ?, ?, ?, ?)`, recordsTable)
	}

	if _, err := st.db.ExecContext(ctx, query, rec.DogID, dateStr, worked, rec.Distance, rec.Tag); err != nil {
		return false, fmt.Errorf("failed to upsert record for dog %s on %s: %w", rec.DogID, dateStr, err)
	}
	return created, nil
}

// Status returns store-level counters for diagnostics.
func (st *SQLStore) Status(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(st.backend),
		Connected: st.db != nil,
	}
	if st.db == nil {
		return status, nil
	}

	row := st.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", dogsTable))
	if err := row.Scan(&status.Dogs); err != nil {
		return status, fmt.Errorf("failed to count dogs: %w", err)
	}

	row = st.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", recordsTable))
	if err := row.Scan(&status.Records); err != nil {
		return status, fmt.Errorf("failed to count records: %w", err)
	}

	if status.Records == 0 {
		return status, nil
	}

	// String min/max works because dates are stored as YYYY-MM-DD.
	row = st.db.QueryRowContext(ctx, fmt.Sprintf("SELECT MIN(date), MAX(date) FROM %s", recordsTable))
	var first, last string
	if err := row.Scan(&first, &last); err != nil {
		return status, fmt.Errorf("failed to get date range: %w", err)
	}
	var err error
	if status.FirstDate, err = schema.ParseDay(first); err != nil {
		return status, err
	}
	if status.LastDate, err = schema.ParseDay(last); err != nil {
		return status, err
	}
	return status, nil
}

// Close closes the underlying DB connection.
func (st *SQLStore) Close() error {
	if st.db != nil {
		return st.db.Close()
	}
	return nil
}

// placeholder returns the n-th parameter placeholder for the backend.
func (st *SQLStore) placeholder(n int) string {
	if st.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
