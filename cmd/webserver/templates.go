package main

// Inline page templates. Small enough that shipping a templates/
// directory next to the binary is not worth it.
var pageTemplates = map[string]string{
	"home": `<!DOCTYPE html>
<html>
<head><title>Quizbot</title></head>
<body>
<h1>Quizbot</h1>
<p><a href="/quiz/new">Create a new quiz</a></p>
{{if .Quizzes}}
<h2>Quizzes</h2>
<ul>
{{range .Quizzes}}
<li><a href="/quiz/{{.ID}}">{{.Topic}}</a> ({{.NumQuestions}} questions)</li>
{{end}}
</ul>
{{else}}
<p>No quizzes yet.</p>
{{end}}
</body>
</html>`,

	"new_quiz": `<!DOCTYPE html>
<html>
<head><title>New Quiz</title></head>
<body>
<h1>New Quiz</h1>
<form method="POST" action="/quiz/new">
<p><label>Topic: <input type="text" name="topic" placeholder="Enter the topic of the document"></label></p>
<p><label>Number of questions (1-10): <input type="number" name="num_questions" min="1" max="10" value="5"></label></p>
<p><button type="submit">Generate</button></p>
</form>
<p><a href="/">Back</a></p>
</body>
</html>`,

	"generating": `<!DOCTYPE html>
<html>
<head>
<title>Generating...</title>
<meta http-equiv="refresh" content="3">
</head>
<body>
<h1>Generating quiz on: {{.Quiz.Topic}}</h1>
<p>This may take a moment. The page refreshes automatically.</p>
</body>
</html>`,

	"question": `<!DOCTYPE html>
<html>
<head><title>{{.Quiz.Topic}}</title></head>
<body>
<h1>{{.Quiz.Topic}}</h1>
<h2>Question {{.QuestionNum}}/{{.Total}}</h2>
<p>{{.Question.Text}}</p>
{{if .Answered}}
  {{if .Correct}}<p><strong>Correct!</strong></p>{{else}}<p><strong>Incorrect.</strong> You answered {{.Given}}; the correct answer is {{.Question.Answer}}.</p>{{end}}
  {{if .Question.Explanation}}<p>Explanation: {{.Question.Explanation}}</p>{{end}}
  <ul>
  {{range .Question.Choices}}<li>{{.Key}}) {{.Value}}</li>{{end}}
  </ul>
{{else}}
<form method="POST" action="/quiz/{{.Quiz.ID}}">
{{range .Question.Choices}}
<p><label><input type="radio" name="answer" value="{{.Key}}" required> {{.Key}}) {{.Value}}</label></p>
{{end}}
<p><button type="submit">Submit</button></p>
</form>
{{end}}
<p>
<a href="/quiz/{{.Quiz.ID}}?nav=prev">&larr; Previous</a> |
<a href="/quiz/{{.Quiz.ID}}?nav=next">Next &rarr;</a> |
<a href="/">Home</a>
</p>
</body>
</html>`,
}
