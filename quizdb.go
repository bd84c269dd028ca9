package quizbot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents a quiz database connection
type DB struct {
	db *sql.DB
}

// DBQuiz represents a quiz row in the database
type DBQuiz struct {
	ID           string    `json:"id"`
	Topic        string    `json:"topic"`
	NumQuestions int       `json:"num_questions"`
	CreatedAt    time.Time `json:"created_at"`
	Status       string    `json:"status"` // "generating", "ready", "failed"
}

// DBQuestion represents a question row in the database
type DBQuestion struct {
	ID          string `json:"id"`
	QuizID      string `json:"quiz_id"`
	QuestionNum int    `json:"question_num"`
	Text        string `json:"text"`
	Choices     string `json:"choices"` // JSON array of {key,value} pairs
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}

// OpenDB opens a new database connection
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: db}, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() error {
	return db.db.Close()
}

// CreateTables creates the necessary tables if they don't exist
func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			num_questions INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'generating'
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			quiz_id TEXT NOT NULL,
			question_num INTEGER NOT NULL,
			text TEXT NOT NULL,
			choices TEXT NOT NULL,
			answer TEXT NOT NULL,
			explanation TEXT,
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
		)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// CreateQuiz creates a new quiz in the database
func (db *DB) CreateQuiz(quiz *DBQuiz) error {
	_, err := db.db.Exec(
		"INSERT INTO quizzes (id, topic, num_questions, created_at, status) VALUES (?, ?, ?, ?, ?)",
		quiz.ID, quiz.Topic, quiz.NumQuestions, quiz.CreatedAt, quiz.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// GetQuiz retrieves a quiz by ID
func (db *DB) GetQuiz(id string) (*DBQuiz, error) {
	var quiz DBQuiz
	err := db.db.QueryRow(
		"SELECT id, topic, num_questions, created_at, status FROM quizzes WHERE id = ?",
		id,
	).Scan(&quiz.ID, &quiz.Topic, &quiz.NumQuestions, &quiz.CreatedAt, &quiz.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("quiz not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return &quiz, nil
}

// GetQuizzes retrieves all quizzes, optionally limited by count
func (db *DB) GetQuizzes(limit int) ([]DBQuiz, error) {
	query := "SELECT id, topic, num_questions, created_at, status FROM quizzes ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []DBQuiz
	for rows.Next() {
		var quiz DBQuiz
		err := rows.Scan(&quiz.ID, &quiz.Topic, &quiz.NumQuestions, &quiz.CreatedAt, &quiz.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quizzes: %w", err)
	}

	return quizzes, nil
}

// UpdateQuizStatus updates the status of a quiz
func (db *DB) UpdateQuizStatus(id, status string) error {
	_, err := db.db.Exec("UPDATE quizzes SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update quiz status: %w", err)
	}
	return nil
}

// CreateQuestion creates a new question in the database
func (db *DB) CreateQuestion(question *DBQuestion) error {
	_, err := db.db.Exec(
		"INSERT INTO questions (id, quiz_id, question_num, text, choices, answer, explanation) VALUES (?, ?, ?, ?, ?, ?, ?)",
		question.ID, question.QuizID, question.QuestionNum, question.Text, question.Choices, question.Answer, question.Explanation,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// GetQuestions retrieves all questions for a quiz, in question order
func (db *DB) GetQuestions(quizID string) ([]DBQuestion, error) {
	rows, err := db.db.Query(
		"SELECT id, quiz_id, question_num, text, choices, answer, explanation FROM questions WHERE quiz_id = ? ORDER BY question_num",
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	var questions []DBQuestion
	for rows.Next() {
		var question DBQuestion
		err := rows.Scan(&question.ID, &question.QuizID, &question.QuestionNum, &question.Text, &question.Choices, &question.Answer, &question.Explanation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}

// SaveQuiz stores a built quiz and all its questions.
func (db *DB) SaveQuiz(quiz *Quiz) error {
	dbQuiz := &DBQuiz{
		ID:           quiz.ID,
		Topic:        quiz.Topic,
		NumQuestions: quiz.TotalQuestions,
		CreatedAt:    quiz.CreatedAt,
		Status:       "ready",
	}
	if err := db.CreateQuiz(dbQuiz); err != nil {
		return err
	}
	return db.SaveQuestions(quiz.ID, quiz.Questions)
}

// SaveQuestions stores the questions of a quiz in order.
func (db *DB) SaveQuestions(quizID string, questions []Question) error {
	for i, q := range questions {
		choicesJSON, err := ChoicesToJSON(q.Choices)
		if err != nil {
			return fmt.Errorf("failed to marshal choices for question %s: %w", q.ID, err)
		}
		dbQuestion := &DBQuestion{
			ID:          q.ID,
			QuizID:      quizID,
			QuestionNum: i + 1,
			Text:        q.Text,
			Choices:     choicesJSON,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		}
		if err := db.CreateQuestion(dbQuestion); err != nil {
			return err
		}
	}
	return nil
}

// LoadBank reconstructs the question bank of a stored quiz, ready to hand
// to a navigator.
func (db *DB) LoadBank(quizID string) (*QuestionBank, error) {
	quiz, err := db.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	rows, err := db.GetQuestions(quizID)
	if err != nil {
		return nil, err
	}

	bank := NewQuestionBank()
	for _, row := range rows {
		choices, err := JSONToChoices(row.Choices)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal choices for question %s: %w", row.ID, err)
		}
		bank.Add(Question{
			ID:          row.ID,
			Text:        row.Text,
			Choices:     choices,
			Answer:      row.Answer,
			Explanation: row.Explanation,
			Topic:       quiz.Topic,
		})
	}
	return bank, nil
}

// ChoicesToJSON converts a choice list to its JSON column representation.
func ChoicesToJSON(choices []Choice) (string, error) {
	data, err := json.Marshal(choices)
	if err != nil {
		return "", fmt.Errorf("failed to marshal choices: %w", err)
	}
	return string(data), nil
}

// JSONToChoices converts the JSON column representation back to a choice list.
func JSONToChoices(choicesJSON string) ([]Choice, error) {
	var choices []Choice
	if err := json.Unmarshal([]byte(choicesJSON), &choices); err != nil {
		return nil, fmt.Errorf("failed to unmarshal choices: %w", err)
	}
	return choices, nil
}

// RunGeneration builds a quiz for an already-created quiz row and stores
// the result, updating the row's status as it goes. Intended to run in the
// background on behalf of the webserver.
func (db *DB) RunGeneration(quizID string, req GenerationRequest, builder *QuizBuilder) {
	logger, err := NewLLMLogger(quizID, req)
	if err != nil {
		log.Printf("Failed to create logger for quiz %s: %v", quizID, err)
		// Continue without logging rather than failing
	} else {
		builder.SetLogger(logger)
		SetGlobalLogger(logger)
		defer func() {
			SetGlobalLogger(nil)
			logger.Close()
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	bank, err := builder.BuildQuiz(ctx, req)
	if err != nil {
		log.Printf("Failed to build quiz %s: %v", quizID, err)
		if err := db.UpdateQuizStatus(quizID, "failed"); err != nil {
			log.Printf("Failed to update quiz status %s: %v", quizID, err)
		}
		return
	}

	if err := db.SaveQuestions(quizID, bank.Questions()); err != nil {
		log.Printf("Failed to store questions for quiz %s: %v", quizID, err)
		if err := db.UpdateQuizStatus(quizID, "failed"); err != nil {
			log.Printf("Failed to update quiz status %s: %v", quizID, err)
		}
		return
	}

	if err := db.UpdateQuizStatus(quizID, "ready"); err != nil {
		log.Printf("Failed to update quiz status %s: %v", quizID, err)
	}
}
