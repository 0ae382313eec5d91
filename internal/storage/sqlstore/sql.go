package sqlstore

// Facilities and the user lists are TEXT, not JSON/JSONB: legacy rows may
// carry blobs that do not parse and must still load.

var mysqlSchema = []string{`
CREATE TABLE IF NOT EXISTS residencies (
  seq         BIGINT AUTO_INCREMENT PRIMARY KEY,
  id          VARCHAR(36)  NOT NULL UNIQUE,
  title       VARCHAR(255) NOT NULL,
  description TEXT         NOT NULL,
  price       BIGINT       NOT NULL,
  address     VARCHAR(255) NOT NULL,
  city        VARCHAR(128) NOT NULL,
  country     VARCHAR(128) NOT NULL,
  image       TEXT         NOT NULL,
  facilities  LONGTEXT     NOT NULL,
  user_email  VARCHAR(255) NOT NULL,
  created_at  DATETIME(6)  NOT NULL,
  updated_at  DATETIME(6)  NOT NULL,
  UNIQUE KEY uq_residency_address_owner (address, user_email),
  KEY idx_residency_city (city),
  KEY idx_residency_price (price)
) CHARACTER SET utf8mb4`, `
CREATE TABLE IF NOT EXISTS users (
  seq           BIGINT AUTO_INCREMENT PRIMARY KEY,
  id            VARCHAR(36)  NOT NULL UNIQUE,
  email         VARCHAR(255) NOT NULL UNIQUE,
  name          VARCHAR(255) NOT NULL,
  image         TEXT         NOT NULL,
  booked_visits LONGTEXT     NOT NULL,
  favourites    LONGTEXT     NOT NULL,
  created_at    DATETIME(6)  NOT NULL
) CHARACTER SET utf8mb4`,
}

var postgresSchema = []string{`
CREATE TABLE IF NOT EXISTS residencies (
  seq         BIGSERIAL PRIMARY KEY,
  id          TEXT        NOT NULL UNIQUE,
  title       TEXT        NOT NULL,
  description TEXT        NOT NULL,
  price       BIGINT      NOT NULL,
  address     TEXT        NOT NULL,
  city        TEXT        NOT NULL,
  country     TEXT        NOT NULL,
  image       TEXT        NOT NULL,
  facilities  TEXT        NOT NULL,
  user_email  TEXT        NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL,
  updated_at  TIMESTAMPTZ NOT NULL,
  UNIQUE (address, user_email)
)`,
	`CREATE INDEX IF NOT EXISTS idx_residency_city ON residencies (city)`,
	`CREATE INDEX IF NOT EXISTS idx_residency_price ON residencies (price)`, `
CREATE TABLE IF NOT EXISTS users (
  seq           BIGSERIAL PRIMARY KEY,
  id            TEXT        NOT NULL UNIQUE,
  email         TEXT        NOT NULL UNIQUE,
  name          TEXT        NOT NULL,
  image         TEXT        NOT NULL,
  booked_visits TEXT        NOT NULL,
  favourites    TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL
)`,
}

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS residencies (
  seq         INTEGER PRIMARY KEY AUTOINCREMENT,
  id          TEXT    NOT NULL UNIQUE,
  title       TEXT    NOT NULL,
  description TEXT    NOT NULL,
  price       INTEGER NOT NULL,
  address     TEXT    NOT NULL,
  city        TEXT    NOT NULL,
  country     TEXT    NOT NULL,
  image       TEXT    NOT NULL,
  facilities  TEXT    NOT NULL,
  user_email  TEXT    NOT NULL,
  created_at  TEXT    NOT NULL,
  updated_at  TEXT    NOT NULL,
  UNIQUE (address, user_email)
)`,
	`CREATE INDEX IF NOT EXISTS idx_residency_city ON residencies (city)`,
	`CREATE INDEX IF NOT EXISTS idx_residency_price ON residencies (price)`, `
CREATE TABLE IF NOT EXISTS users (
  seq           INTEGER PRIMARY KEY AUTOINCREMENT,
  id            TEXT NOT NULL UNIQUE,
  email         TEXT NOT NULL UNIQUE,
  name          TEXT NOT NULL,
  image         TEXT NOT NULL,
  booked_visits TEXT NOT NULL,
  favourites    TEXT NOT NULL,
  created_at    TEXT NOT NULL
)`,
}

// -----------------------------------------------------------------------------
// RESIDENCIES
// -----------------------------------------------------------------------------

const insertResidencySQL = `
INSERT INTO residencies
  (id, title, description, price, address, city, country, image, facilities, user_email, created_at, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateResidencySQL = `
UPDATE residencies SET
  title       = ?,
  description = ?,
  price       = ?,
  address     = ?,
  city        = ?,
  country     = ?,
  image       = ?,
  facilities  = ?,
  updated_at  = ?
WHERE id = ?
`

const deleteResidencySQL = `DELETE FROM residencies WHERE id = ?`

const selectResidencyCols = `
SELECT id, title, description, price, address, city, country, image, facilities, user_email, created_at, updated_at
FROM residencies
`

// '!' escapes LIKE wildcards; SQLite has no default escape character.
const likeClause = ` LIKE ? ESCAPE '!'`

const statsSQL = `
SELECT COUNT(*), COALESCE(AVG(price), 0), COALESCE(MIN(price), 0), COALESCE(MAX(price), 0)
FROM residencies
`

const topCitiesSQL = `
SELECT city, COUNT(*) AS n
FROM residencies
GROUP BY city
ORDER BY n DESC, city ASC
LIMIT ?
`

// -----------------------------------------------------------------------------
// USERS
// -----------------------------------------------------------------------------

const insertUserSQL = `
INSERT INTO users (id, email, name, image, booked_visits, favourites, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const selectUserSQL = `
SELECT id, email, name, image, booked_visits, favourites, created_at
FROM users
WHERE email = ?
`

const updateUserListsSQL = `
UPDATE users SET booked_visits = ?, favourites = ? WHERE email = ?
`
