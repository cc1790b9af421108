package sqlitestore

// Schema is the SQL DDL for a metadata store database. It generalizes
// the teacher's ProjectSchema (entities/observations/relations) to the
// type-system-plus-entity-graph shape of §3: type schemas, the three
// typed entity tables, events, and the three set-semantics link tables.
const Schema = `
CREATE TABLE IF NOT EXISTS types (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    kind        INTEGER NOT NULL,
    name        TEXT NOT NULL,
    version     TEXT,
    UNIQUE(kind, name, version)
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_types_kind_name_version ON types(kind, name, IFNULL(version, ''));

CREATE TABLE IF NOT EXISTS type_properties (
    type_id     INTEGER NOT NULL REFERENCES types(id),
    name        TEXT NOT NULL,
    data_type   INTEGER NOT NULL,
    PRIMARY KEY (type_id, name)
);

CREATE TABLE IF NOT EXISTS parent_types (
    parent_type_id INTEGER NOT NULL REFERENCES types(id),
    child_type_id  INTEGER NOT NULL REFERENCES types(id),
    PRIMARY KEY (parent_type_id, child_type_id)
);

CREATE TABLE IF NOT EXISTS artifacts (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    type_id         INTEGER NOT NULL REFERENCES types(id),
    name            TEXT,
    uri             TEXT,
    create_time_since_epoch      INTEGER NOT NULL,
    last_update_time_since_epoch INTEGER NOT NULL,
    UNIQUE(type_id, name)
);
CREATE INDEX IF NOT EXISTS idx_artifacts_uri ON artifacts(uri);

CREATE TABLE IF NOT EXISTS artifact_properties (
    artifact_id   INTEGER NOT NULL REFERENCES artifacts(id),
    name          TEXT NOT NULL,
    is_custom     INTEGER NOT NULL DEFAULT 0,
    data_type     INTEGER NOT NULL,
    int_value     INTEGER,
    double_value  REAL,
    string_value  TEXT,
    struct_value  TEXT,
    PRIMARY KEY (artifact_id, name, is_custom)
);

CREATE TABLE IF NOT EXISTS executions (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    type_id         INTEGER NOT NULL REFERENCES types(id),
    name            TEXT,
    create_time_since_epoch      INTEGER NOT NULL,
    last_update_time_since_epoch INTEGER NOT NULL,
    UNIQUE(type_id, name)
);

CREATE TABLE IF NOT EXISTS execution_properties (
    execution_id  INTEGER NOT NULL REFERENCES executions(id),
    name          TEXT NOT NULL,
    is_custom     INTEGER NOT NULL DEFAULT 0,
    data_type     INTEGER NOT NULL,
    int_value     INTEGER,
    double_value  REAL,
    string_value  TEXT,
    struct_value  TEXT,
    PRIMARY KEY (execution_id, name, is_custom)
);

CREATE TABLE IF NOT EXISTS contexts (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    type_id         INTEGER NOT NULL REFERENCES types(id),
    name            TEXT NOT NULL,
    create_time_since_epoch      INTEGER NOT NULL,
    last_update_time_since_epoch INTEGER NOT NULL,
    UNIQUE(type_id, name)
);

CREATE TABLE IF NOT EXISTS context_properties (
    context_id    INTEGER NOT NULL REFERENCES contexts(id),
    name          TEXT NOT NULL,
    is_custom     INTEGER NOT NULL DEFAULT 0,
    data_type     INTEGER NOT NULL,
    int_value     INTEGER,
    double_value  REAL,
    string_value  TEXT,
    struct_value  TEXT,
    PRIMARY KEY (context_id, name, is_custom)
);

CREATE TABLE IF NOT EXISTS events (
    artifact_id   INTEGER NOT NULL REFERENCES artifacts(id),
    execution_id  INTEGER NOT NULL REFERENCES executions(id),
    kind          INTEGER NOT NULL,
    path          TEXT NOT NULL DEFAULT '[]',
    milliseconds_since_epoch INTEGER NOT NULL,
    UNIQUE(artifact_id, execution_id, kind, path)
);
CREATE INDEX IF NOT EXISTS idx_events_artifact ON events(artifact_id);
CREATE INDEX IF NOT EXISTS idx_events_execution ON events(execution_id);

CREATE TABLE IF NOT EXISTS attributions (
    context_id    INTEGER NOT NULL REFERENCES contexts(id),
    artifact_id   INTEGER NOT NULL REFERENCES artifacts(id),
    PRIMARY KEY (context_id, artifact_id)
);

CREATE TABLE IF NOT EXISTS associations (
    context_id    INTEGER NOT NULL REFERENCES contexts(id),
    execution_id  INTEGER NOT NULL REFERENCES executions(id),
    PRIMARY KEY (context_id, execution_id)
);

CREATE TABLE IF NOT EXISTS parent_contexts (
    parent_context_id INTEGER NOT NULL REFERENCES contexts(id),
    child_context_id  INTEGER NOT NULL REFERENCES contexts(id),
    PRIMARY KEY (parent_context_id, child_context_id)
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL
);
`

// Pragmas configures SQLite the way the teacher's meta/project stores
// do: WAL journaling, a busy timeout instead of immediate SQLITE_BUSY
// failures, and foreign keys enforced.
const Pragmas = `
PRAGMA journal_mode = WAL;
PRAGMA busy_timeout = 5000;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
`

// CurrentSchemaVersion is the physical schema version this binding
// writes. Migration/upgrade of older on-disk schemas is a configuration
// knob per spec.md §1 — specified, not designed, here.
const CurrentSchemaVersion = 1
