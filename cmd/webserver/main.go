package main

import (
	"context"
	"flag"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quizbot"
	"quizbot/vectorstore"

	"github.com/gorilla/sessions"
)

const sessionName = "quizbot-session"

type Server struct {
	db        *quizbot.DB
	store     *sessions.CookieStore
	maker     *quizbot.QuestionMaker
	templates map[string]*template.Template
}

func main() {
	var (
		configPath = flag.String("config", "", "Path to config file (default: ./config.yaml if present)")
		verbose    = flag.Bool("verbose", false, "Enable verbose debugging output")
	)
	flag.Parse()

	quizbot.SetVerbose(*verbose)

	cfg, err := quizbot.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.OpenAI.APIKey == "" {
		log.Fatal("OpenAI API key is required. Set QUIZBOT_OPENAI_API_KEY or OPENAI_API_KEY.")
	}
	if cfg.Web.SessionSecret == "" {
		log.Fatal("Session secret is required. Set QUIZBOT_WEB_SESSION_SECRET.")
	}

	db, err := quizbot.OpenDB(cfg.DB.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.CloseDB()

	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	vstore, err := vectorstore.NewQdrant(context.Background(), cfg.Vector.Host, cfg.Vector.Port, cfg.Vector.Collection)
	if err != nil {
		log.Fatalf("Failed to connect to vector store: %v", err)
	}
	defer vstore.Close()

	embedder := vectorstore.NewOpenAIEmbedder(cfg.OpenAI.APIKey, cfg.OpenAI.EmbedModel)
	retriever := vectorstore.NewTopicRetriever(embedder, vstore, cfg.Vector.TopK)
	maker := quizbot.NewQuestionMaker(cfg.OpenAI.APIKey, cfg.OpenAI.Model, retriever)

	templates := make(map[string]*template.Template)
	for name, body := range pageTemplates {
		templates[name] = template.Must(template.New(name).Parse(body))
	}

	server := &Server{
		db:        db,
		store:     sessions.NewCookieStore([]byte(cfg.Web.SessionSecret)),
		maker:     maker,
		templates: templates,
	}

	http.HandleFunc("/", server.handleHome)
	http.HandleFunc("/quiz/new", server.handleNewQuiz)
	http.HandleFunc("/quiz/", server.handleQuiz)

	log.Printf("Starting server on %s", cfg.Web.Addr)
	log.Fatal(http.ListenAndServe(cfg.Web.Addr, nil))
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates[name].Execute(w, data); err != nil {
		log.Printf("Template error in %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	allQuizzes, err := s.db.GetQuizzes(0)
	if err != nil {
		log.Printf("Failed to get quizzes: %v", err)
		http.Error(w, "Failed to get quizzes", http.StatusInternalServerError)
		return
	}

	var readyQuizzes []quizbot.DBQuiz
	for _, quiz := range allQuizzes {
		if quiz.Status == "ready" {
			readyQuizzes = append(readyQuizzes, quiz)
		}
	}

	s.render(w, "home", map[string]interface{}{
		"Quizzes": readyQuizzes,
	})
}

func (s *Server) handleNewQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, "new_quiz", nil)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	topic := strings.TrimSpace(r.FormValue("topic"))
	if topic == "" {
		topic = quizbot.DefaultTopic
	}

	numQuestions, err := strconv.Atoi(r.FormValue("num_questions"))
	if err != nil || numQuestions < 1 || numQuestions > quizbot.MaxQuestions {
		http.Error(w, "Number of questions must be between 1 and 10", http.StatusBadRequest)
		return
	}

	quiz := &quizbot.DBQuiz{
		ID:           quizbot.NewQuizID(),
		Topic:        topic,
		NumQuestions: numQuestions,
		CreatedAt:    time.Now(),
		Status:       "generating",
	}
	if err := s.db.CreateQuiz(quiz); err != nil {
		log.Printf("Failed to create quiz: %v", err)
		http.Error(w, "Failed to create quiz", http.StatusInternalServerError)
		return
	}

	req := quizbot.GenerationRequest{Topic: topic, NumQuestions: numQuestions}
	go s.db.RunGeneration(quiz.ID, req, quizbot.NewQuizBuilder(s.maker))

	http.Redirect(w, r, "/quiz/"+quiz.ID, http.StatusSeeOther)
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := strings.TrimPrefix(r.URL.Path, "/quiz/")
	if quizID == "" || strings.Contains(quizID, "/") {
		http.NotFound(w, r)
		return
	}

	quiz, err := s.db.GetQuiz(quizID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch quiz.Status {
	case "generating":
		s.render(w, "generating", map[string]interface{}{"Quiz": quiz})
		return
	case "failed":
		http.Error(w, "Quiz generation failed", http.StatusInternalServerError)
		return
	}

	bank, err := s.db.LoadBank(quizID)
	if err != nil {
		log.Printf("Failed to load bank for quiz %s: %v", quizID, err)
		http.Error(w, "Failed to load quiz", http.StatusInternalServerError)
		return
	}

	nav, err := quizbot.NewNavigator(bank)
	if err != nil {
		http.Error(w, "Quiz has no questions", http.StatusInternalServerError)
		return
	}

	session, _ := s.store.Get(r, sessionName)
	state := quizbot.NavigatorState{}
	sessionKey := "question_index:" + quizID
	if idx, ok := session.Values[sessionKey].(int); ok {
		state.CurrentIndex = idx
	}

	// Navigation uses POST-redirect-GET so refreshing never re-navigates.
	if r.Method == http.MethodGet {
		if dir := navDirection(r.URL.Query().Get("nav")); dir != 0 {
			state = nav.Advance(dir, state)
			session.Values[sessionKey] = state.CurrentIndex
			if err := session.Save(r, w); err != nil {
				log.Printf("Failed to save session: %v", err)
			}
			http.Redirect(w, r, "/quiz/"+quizID, http.StatusSeeOther)
			return
		}
	}

	question := nav.QuestionAt(state.CurrentIndex)

	data := map[string]interface{}{
		"Quiz":        quiz,
		"Question":    question,
		"QuestionNum": state.CurrentIndex + 1,
		"Total":       nav.Size(),
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		answer := r.FormValue("answer")
		data["Answered"] = true
		data["Correct"] = answer == question.Answer
		data["Given"] = answer
	}

	s.render(w, "question", data)
}

func navDirection(nav string) int {
	switch nav {
	case "next":
		return +1
	case "prev":
		return -1
	}
	return 0
}
