package seed

import (
	"readquest/backend/models"

	"gorm.io/datatypes"
)

type quizSeed struct {
	chapter   int
	quiz      models.Quiz
	questions []models.QuizQuestion
}

var chapters = []models.Chapter{
	{
		Number: 1,
		Title:  "Don Abbondio e i bravi",
		Content: `<p>Quel ramo del lago di Como, che volge a mezzogiorno, tra due catene non interrotte di monti, tutto a seni e a golfi, a seconda dello sporgere e del rientrare di quelli, vien, quasi a un tratto, a ristringersi, e a prender corso e figura di fiume.</p>
<p>Per una di queste stradicciole, tornava bel bello dalla passeggiata verso casa, sulla sera del giorno 7 novembre dell'anno 1628, don Abbondio, curato d'una delle terre accennate di sopra.</p>`,
		Summary:     "Il romanzo si apre sul lago di Como e sull'incontro di don Abbondio con i bravi.",
		ReadingTime: 15,
	},
	{
		Number: 2,
		Title:  "Renzo e Lucia",
		Content: `<p>Il sole non era ancora tutto apparso sull'orizzonte, quando Renzo uscì dalla sua casetta, e prese la strada che menava alla chiesa del suo paesello.</p>
<p>Lucia infatti s'avviava in quel momento alla chiesa, vestita pur essa a festa, e accompagnata dalla madre Agnese.</p>`,
		Summary:     "Renzo e Lucia si preparano alle nozze, ma un ostacolo inatteso li attende.",
		ReadingTime: 12,
	},
	{
		Number: 3,
		Title:  "Il matrimonio impedito",
		Content: `<p>"Come, come! cosa voglion dire queste cerimonie in casa mia?" disse don Abbondio, con voce alterata, guardando in viso prima l'uno, poi l'altro.</p>`,
		Summary:     "Don Abbondio rifiuta di celebrare il matrimonio e gli sposi restano nella disperazione.",
		ReadingTime: 18,
		IsLocked:    true,
	},
}

var quizzes = []quizSeed{
	{
		chapter: 1,
		quiz: models.Quiz{
			Title:       "Quiz Capitolo 1 - Don Abbondio e i bravi",
			Description: "Verifica la tua comprensione del primo capitolo",
			XPReward:    100,
		},
		questions: []models.QuizQuestion{
			multipleChoice(1, "Dove è ambientato l'inizio del romanzo?", "Lago di Como",
				"Lago di Como", "Lago di Garda", "Lago Maggiore", "Lago d'Iseo"),
			multipleChoice(2, "Come si chiama il monte che somiglia a una sega?", "Il Resegone",
				"Monte San Martino", "Il Resegone", "Monte Barro", "Monte Grona"),
			multipleChoice(3, "In che data inizia la storia?", "7 novembre 1628",
				"7 novembre 1628", "7 novembre 1630", "7 ottobre 1628", "7 dicembre 1628"),
			trueFalse(4, "Don Abbondio è il curato del paese.", "true"),
		},
	},
	{
		chapter: 2,
		quiz: models.Quiz{
			Title:       "Quiz Capitolo 2 - Renzo e Lucia",
			Description: "Test sulla presentazione dei protagonisti",
			XPReward:    100,
		},
		questions: []models.QuizQuestion{
			multipleChoice(1, "Come si chiama la promessa sposa di Renzo?", "Lucia",
				"Lucia", "Agnese", "Perpetua", "Geltrude"),
			multipleChoice(2, "Come si chiama la madre di Lucia?", "Agnese",
				"Perpetua", "Agnese", "Geltrude", "Marta"),
			trueFalse(3, "Renzo e Lucia erano già fidanzati.", "true"),
		},
	},
}

var badges = []models.Badge{
	{
		Name:        "Primo Passo",
		Description: "Hai completato il primo capitolo",
		Icon:        "fas fa-star",
		Type:        models.BadgeChapter,
		Requirement: datatypes.JSONMap{"chapter": 1},
		XPReward:    50,
	},
	{
		Name:        "Lettore Assiduo",
		Description: "Hai letto 3 capitoli consecutivi",
		Icon:        "fas fa-book-open",
		Type:        models.BadgeAchievement,
		Requirement: datatypes.JSONMap{"consecutive_chapters": 3},
		XPReward:    100,
	},
	{
		Name:        "Quiz Master",
		Description: "Hai superato 5 quiz con punteggio perfetto",
		Icon:        "fas fa-trophy",
		Type:        models.BadgeQuiz,
		Requirement: datatypes.JSONMap{"perfect_quizzes": 5},
		XPReward:    200,
	},
	{
		Name:        "Streak di Fuoco",
		Description: "Hai mantenuto una streak di 7 giorni",
		Icon:        "fas fa-fire",
		Type:        models.BadgeStreak,
		Requirement: datatypes.JSONMap{"streak_days": 7},
		XPReward:    150,
	},
}

var dailyChallenge = models.DailyChallenge{
	Title:       "Lettore del Giorno",
	Description: "Leggi 3 capitoli oggi per completare la sfida giornaliera",
	Type:        "reading",
	Requirement: datatypes.JSONMap{"chapters_to_read": 3, "target": 3},
	XPReward:    150,
	CoinReward:  50,
	IsActive:    true,
}

func multipleChoice(order int, question, correct string, options ...string) models.QuizQuestion {
	return models.QuizQuestion{
		Question:      question,
		Type:          models.QuestionMultipleChoice,
		Options:       options,
		CorrectAnswer: correct,
		Points:        10,
		Order:         order,
	}
}

func trueFalse(order int, question, correct string) models.QuizQuestion {
	return models.QuizQuestion{
		Question:      question,
		Type:          models.QuestionTrueFalse,
		CorrectAnswer: correct,
		Points:        10,
		Order:         order,
	}
}
