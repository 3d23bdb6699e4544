package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id          TEXT PRIMARY KEY,
    email       TEXT NOT NULL UNIQUE,
    provider    TEXT NOT NULL DEFAULT 'workapi',
    display_name TEXT,
    created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS emails (
    id             TEXT PRIMARY KEY,
    account_id     TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    thread_id      TEXT,
    subject        TEXT,
    sender_addr    TEXT NOT NULL DEFAULT '',
    sender_name    TEXT NOT NULL DEFAULT '',
    to_addrs       TEXT,
    cc_addrs       TEXT,
    bcc_addrs      TEXT,
    seen           BOOLEAN DEFAULT FALSE,
    flagged        BOOLEAN DEFAULT FALSE,
    segments       TEXT,
    plain_text     TEXT,
    html           TEXT,
    body_text      TEXT,
    mailbox_ids    TEXT,
    attachment_ids TEXT,
    received_at    INTEGER NOT NULL DEFAULT 0,
    created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS email_labels (
    email_id    TEXT NOT NULL REFERENCES emails(id) ON DELETE CASCADE,
    label       TEXT NOT NULL,
    PRIMARY KEY (email_id, label)
);

CREATE TABLE IF NOT EXISTS attendees (
    account_id        TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    event_id          TEXT NOT NULL,
    position          INTEGER NOT NULL,
    profile_id        TEXT,
    email_address     TEXT,
    display_name      TEXT,
    organizer         BOOLEAN DEFAULT FALSE,
    self              BOOLEAN DEFAULT FALSE,
    resource          BOOLEAN DEFAULT FALSE,
    optional          BOOLEAN DEFAULT FALSE,
    response_status   TEXT,
    comment           TEXT,
    additional_guests INTEGER DEFAULT 0,
    PRIMARY KEY (account_id, event_id, position)
);

CREATE TABLE IF NOT EXISTS sync_state (
    account_id    TEXT PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
    message_count INTEGER,
    last_sync     INTEGER
);

CREATE INDEX IF NOT EXISTS idx_emails_account ON emails(account_id);
CREATE INDEX IF NOT EXISTS idx_emails_thread ON emails(thread_id);
CREATE INDEX IF NOT EXISTS idx_emails_received ON emails(received_at DESC);
CREATE INDEX IF NOT EXISTS idx_email_labels_label ON email_labels(label);
`

const ftsSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS emails_fts USING fts5(
    subject, body_text, sender_addr, sender_name,
    content='emails', content_rowid='rowid'
);

CREATE TRIGGER IF NOT EXISTS emails_ai AFTER INSERT ON emails BEGIN
    INSERT INTO emails_fts(rowid, subject, body_text, sender_addr, sender_name)
    VALUES (new.rowid, new.subject, new.body_text, new.sender_addr, new.sender_name);
END;

CREATE TRIGGER IF NOT EXISTS emails_ad AFTER DELETE ON emails BEGIN
    INSERT INTO emails_fts(emails_fts, rowid, subject, body_text, sender_addr, sender_name)
    VALUES ('delete', old.rowid, old.subject, old.body_text, old.sender_addr, old.sender_name);
END;

CREATE TRIGGER IF NOT EXISTS emails_au AFTER UPDATE ON emails BEGIN
    INSERT INTO emails_fts(emails_fts, rowid, subject, body_text, sender_addr, sender_name)
    VALUES ('delete', old.rowid, old.subject, old.body_text, old.sender_addr, old.sender_name);
    INSERT INTO emails_fts(rowid, subject, body_text, sender_addr, sender_name)
    VALUES (new.rowid, new.subject, new.body_text, new.sender_addr, new.sender_name);
END;
`
