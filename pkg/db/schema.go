package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Labels table: ground-truth category per screenshot
CREATE TABLE IF NOT EXISTS labels (
    label_id INTEGER PRIMARY KEY AUTOINCREMENT,
    image_path TEXT NOT NULL UNIQUE,
    true_label TEXT NOT NULL CHECK (true_label IN ('recipe', 'workout', 'quote', 'none')),

    -- Perceptual difference hash (hex), used for near-duplicate screening
    image_hash TEXT,

    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_labels_true_label ON labels(true_label);
CREATE INDEX IF NOT EXISTS idx_labels_image_hash ON labels(image_hash) WHERE image_hash IS NOT NULL;

-- Evaluation runs: one row per "screensift eval" invocation
CREATE TABLE IF NOT EXISTS eval_runs (
    run_id TEXT PRIMARY KEY,
    threshold REAL NOT NULL,
    sample_count INTEGER NOT NULL DEFAULT 0,
    accuracy REAL NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Per-image predictions for each run, with the full score breakdown
CREATE TABLE IF NOT EXISTS predictions (
    prediction_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    image_path TEXT NOT NULL,
    true_label TEXT NOT NULL,
    predicted_label TEXT NOT NULL,
    recipe_score REAL NOT NULL,
    workout_score REAL NOT NULL,
    quote_score REAL NOT NULL,

    -- Detected language of the OCR text (ISO 639-1), 'unknown' when undetectable
    language TEXT,

    FOREIGN KEY (run_id) REFERENCES eval_runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_predictions_run ON predictions(run_id);
CREATE INDEX IF NOT EXISTS idx_predictions_predicted ON predictions(predicted_label);
`
