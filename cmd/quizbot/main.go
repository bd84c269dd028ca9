package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"quizbot"
	"quizbot/vectorstore"
)

func main() {
	var (
		topic        = flag.String("topic", "", "Quiz topic (default: General Knowledge)")
		numQuestions = flag.Int("questions", 5, "Number of questions to generate (1-10)")
		configPath   = flag.String("config", "", "Path to config file (default: ./config.yaml if present)")
		outputFile   = flag.String("output", "", "Output file for quiz JSON (default: stdout)")
		playMode     = flag.Bool("play", false, "Play the quiz interactively after generating")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, err := vectorstore.NewQdrant(ctx, cfg.Vector.Host, cfg.Vector.Port, cfg.Vector.Collection)
	if err != nil {
		log.Fatalf("Failed to connect to vector store: %v", err)
	}
	defer store.Close()

	embedder := vectorstore.NewOpenAIEmbedder(cfg.OpenAI.APIKey, cfg.OpenAI.EmbedModel)
	retriever := vectorstore.NewTopicRetriever(embedder, store, cfg.Vector.TopK)

	maker := quizbot.NewQuestionMaker(cfg.OpenAI.APIKey, cfg.OpenAI.Model, retriever)
	builder := quizbot.NewQuizBuilder(maker)

	req := quizbot.GenerationRequest{
		Topic:        *topic,
		NumQuestions: *numQuestions,
	}

	bank, err := builder.BuildQuiz(ctx, req)
	if err != nil {
		log.Fatalf("Failed to build quiz: %v", err)
	}

	quizTopic := *topic
	if quizTopic == "" {
		quizTopic = quizbot.DefaultTopic
	}
	quiz := quizbot.NewQuiz(quizTopic, bank)

	if db, err := quizbot.OpenDB(cfg.DB.Path); err != nil {
		log.Printf("Failed to open database: %v", err)
	} else {
		if err := db.CreateTables(); err != nil {
			log.Printf("Failed to create tables: %v", err)
		} else if err := db.SaveQuiz(quiz); err != nil {
			log.Printf("Failed to save quiz: %v", err)
		} else {
			log.Printf("Quiz %s saved to %s", quiz.ID, cfg.DB.Path)
		}
		db.CloseDB()
	}

	if *playMode {
		playQuiz(quiz.Topic, bank)
		return
	}

	output, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal quiz: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Quiz saved to: %s", *outputFile)
	} else {
		fmt.Println(string(output))
	}
}

func playQuiz(topic string, bank *quizbot.QuestionBank) {
	nav, err := quizbot.NewNavigator(bank)
	if err != nil {
		log.Fatalf("Failed to start quiz: %v", err)
	}

	fmt.Printf("Starting quiz on: %s (%d questions)\n\n", topic, nav.Size())

	scanner := bufio.NewScanner(os.Stdin)
	state := quizbot.NavigatorState{}
	score := 0

	for answered := 0; answered < nav.Size(); answered++ {
		question := nav.QuestionAt(state.CurrentIndex)

		fmt.Printf("Question %d/%d:\n%s\n\n", state.CurrentIndex+1, nav.Size(), question.Text)
		for _, c := range question.Choices {
			fmt.Printf("%s) %s\n", c.Key, c.Value)
		}
		fmt.Println()

		var answer string
		for {
			fmt.Print("Your answer: ")
			scanner.Scan()
			answer = strings.ToUpper(strings.TrimSpace(scanner.Text()))
			if _, ok := question.Choice(answer); ok {
				break
			}
			fmt.Println("Please enter one of the choice keys")
		}

		if answer == question.Answer {
			fmt.Println("Correct!")
			score++
		} else {
			correct, _ := question.Choice(question.Answer)
			fmt.Printf("Incorrect. The correct answer is %s) %s\n", correct.Key, correct.Value)
		}
		if question.Explanation != "" {
			fmt.Printf("Explanation: %s\n", question.Explanation)
		}
		fmt.Println()

		state = nav.Advance(+1, state)
	}

	percentage := float64(score) / float64(nav.Size()) * 100
	fmt.Printf("Quiz complete! Score: %d/%d (%.1f%%)\n", score, nav.Size(), percentage)
}
