package sqlite

const insertProfileSQL = `INSERT INTO profiles (id, name, metric, shots, length, created_at) VALUES (?, ?, ?, ?, ?, ?)`

const insertColumnSQL = `INSERT INTO profile_columns (profile_id, position, name) VALUES (?, ?, ?)`

const insertValueSQL = `INSERT INTO profile_values (profile_id, column_name, row_index, value) VALUES (?, ?, ?, ?)`

const insertFeatureSQL = `INSERT INTO features (profile_id, label, seq, name, start_row, end_row) VALUES (?, ?, ?, ?, ?, ?)`

const selectProfileSQL = `SELECT name, metric, shots, created_at FROM profiles WHERE id = ?`

const selectColumnsSQL = `SELECT name FROM profile_columns WHERE profile_id = ? ORDER BY position`

const selectValuesSQL = `SELECT column_name, row_index, value FROM profile_values WHERE profile_id = ?`

const selectFeaturesSQL = `
SELECT label, seq, name, start_row, end_row
FROM features
WHERE profile_id = ?
ORDER BY start_row, label`

const listProfilesSQL = `
SELECT p.id, p.name, p.metric, p.shots, p.length, p.created_at,
       (SELECT COUNT(*) FROM features f WHERE f.profile_id = p.id)
FROM profiles p
ORDER BY p.created_at, p.id`

// deleteProfileSQL clears children first; foreign keys are not enforced per connection
var deleteProfileSQL = []string{
	`DELETE FROM features WHERE profile_id = ?`,
	`DELETE FROM profile_values WHERE profile_id = ?`,
	`DELETE FROM profile_columns WHERE profile_id = ?`,
	`DELETE FROM profiles WHERE id = ?`,
}
