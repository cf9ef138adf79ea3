package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"wayfare/pkg/domain"
)

const migrateLockID int64 = 84128412

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&UserModel{}, &UserProfileModel{},
			&CityModel{}, &TopicModel{},
			&QuestionModel{}, &AnswerModel{}, &ReactionModel{},
			&CardModel{}, &CardSourceModel{}, &ReportModel{},
		); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}

// SaveUser registers or updates a user.
func (s *GormStore) SaveUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "is_admin"}),
	}).Create(&model).Error
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// SaveProfile upserts a user's profile.
func (s *GormStore) SaveProfile(p domain.UserProfile) error {
	model := profileToModel(p)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"language", "travel_style", "budget_tier", "cities_of_experience"}),
	}).Create(&model).Error
}

// GetProfile returns the stored profile for a user.
func (s *GormStore) GetProfile(userID string) (domain.UserProfile, bool, error) {
	var model UserProfileModel
	if err := s.db.First(&model, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.UserProfile{}, false, nil
		}
		return domain.UserProfile{}, false, err
	}
	return profileFromModel(model), true, nil
}

// SaveCity upserts a city by ID.
func (s *GormStore) SaveCity(c domain.City) error {
	model := CityModel{ID: c.ID, Name: c.Name, Country: c.Country}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "country"}),
	}).Create(&model).Error
}

// GetCity returns a city by ID.
func (s *GormStore) GetCity(id string) (domain.City, bool, error) {
	var model CityModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.City{}, false, nil
		}
		return domain.City{}, false, err
	}
	return domain.City{ID: model.ID, Name: model.Name, Country: model.Country}, true, nil
}

// ListCities returns all cities ordered by name.
func (s *GormStore) ListCities() ([]domain.City, error) {
	var models []CityModel
	if err := s.db.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.City, 0, len(models))
	for _, m := range models {
		res = append(res, domain.City{ID: m.ID, Name: m.Name, Country: m.Country})
	}
	return res, nil
}

// SaveTopic upserts a topic by ID.
func (s *GormStore) SaveTopic(t domain.Topic) error {
	model := TopicModel{ID: t.ID, Name: t.Name}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&model).Error
}

// GetTopic returns a topic by ID.
func (s *GormStore) GetTopic(id string) (domain.Topic, bool, error) {
	var model TopicModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Topic{}, false, nil
		}
		return domain.Topic{}, false, err
	}
	return domain.Topic{ID: model.ID, Name: model.Name}, true, nil
}

// ListTopics returns all topics ordered by name.
func (s *GormStore) ListTopics() ([]domain.Topic, error) {
	var models []TopicModel
	if err := s.db.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Topic, 0, len(models))
	for _, m := range models {
		res = append(res, domain.Topic{ID: m.ID, Name: m.Name})
	}
	return res, nil
}

// SaveQuestion stores or updates a question.
func (s *GormStore) SaveQuestion(q domain.Question) error {
	model := questionToModel(q)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&model).Error
}

// GetQuestion retrieves a question.
func (s *GormStore) GetQuestion(id string) (domain.Question, bool, error) {
	var model QuestionModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Question{}, false, nil
		}
		return domain.Question{}, false, err
	}
	return questionFromModel(model), true, nil
}

// ListQuestions returns questions matching the filter, newest first.
func (s *GormStore) ListQuestions(filter QuestionFilter) ([]domain.Question, error) {
	tx := s.db.Order("created_at DESC")
	if filter.CityID != "" {
		tx = tx.Where("city_id = ?", filter.CityID)
	}
	if filter.TopicID != "" {
		tx = tx.Where("topic_id = ?", filter.TopicID)
	}
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	var models []QuestionModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Question, 0, len(models))
	for _, m := range models {
		res = append(res, questionFromModel(m))
	}
	return res, nil
}

// CountQuestionsByAuthorSince counts questions an author created after a cutoff.
func (s *GormStore) CountQuestionsByAuthorSince(authorID string, since time.Time) (int, error) {
	var count int64
	if err := s.db.Model(&QuestionModel{}).
		Where("author_id = ? AND created_at >= ?", authorID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// ListThreads returns feed rows: questions with author email and latest
// answer activity, most recently active first.
func (s *GormStore) ListThreads(limit, offset int) ([]Thread, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	type threadRow struct {
		QuestionModel
		AuthorEmail  string
		LastAnswerAt sql.NullTime
	}
	var rows []threadRow
	if err := s.db.Model(&QuestionModel{}).
		Select("question_models.*, user_models.email AS author_email, answer_activity.last_answer_at").
		Joins("JOIN user_models ON user_models.id = question_models.author_id").
		Joins(`LEFT JOIN (
			SELECT question_id, MAX(created_at) AS last_answer_at
			FROM answer_models GROUP BY question_id
		) AS answer_activity ON answer_activity.question_id = question_models.id`).
		Order("COALESCE(answer_activity.last_answer_at, question_models.created_at) DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	threads := make([]Thread, 0, len(rows))
	for _, row := range rows {
		thread := Thread{
			Question:    questionFromModel(row.QuestionModel),
			AuthorEmail: row.AuthorEmail,
		}
		if row.LastAnswerAt.Valid {
			thread.LastAnswerAt = row.LastAnswerAt.Time
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

// SaveAnswer stores an answer. Answers are never updated.
func (s *GormStore) SaveAnswer(a domain.Answer) error {
	model := answerToModel(a)
	return s.db.Create(&model).Error
}

// GetAnswer retrieves an answer.
func (s *GormStore) GetAnswer(id string) (domain.Answer, bool, error) {
	var model AnswerModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Answer{}, false, nil
		}
		return domain.Answer{}, false, err
	}
	return answerFromModel(model), true, nil
}

// ListAnswersByQuestion returns a question's answers in creation order.
func (s *GormStore) ListAnswersByQuestion(questionID string) ([]domain.Answer, error) {
	var models []AnswerModel
	if err := s.db.Where("question_id = ?", questionID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Answer, 0, len(models))
	for _, m := range models {
		res = append(res, answerFromModel(m))
	}
	return res, nil
}

// ListAnswersByAuthor returns an author's answers in creation order.
func (s *GormStore) ListAnswersByAuthor(authorID string) ([]domain.Answer, error) {
	var models []AnswerModel
	if err := s.db.Where("author_id = ?", authorID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Answer, 0, len(models))
	for _, m := range models {
		res = append(res, answerFromModel(m))
	}
	return res, nil
}

// CreateReaction appends a ledger row. There is no update or delete path.
func (s *GormStore) CreateReaction(r domain.Reaction) error {
	model := reactionToModel(r)
	return s.db.Create(&model).Error
}

// ListReactionsByTarget returns all reactions on the given targets.
func (s *GormStore) ListReactionsByTarget(entityType domain.EntityType, entityIDs []string) ([]domain.Reaction, error) {
	if len(entityIDs) == 0 {
		return []domain.Reaction{}, nil
	}
	var models []ReactionModel
	if err := s.db.Where("entity_type = ? AND entity_id IN ?", string(entityType), entityIDs).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Reaction, 0, len(models))
	for _, m := range models {
		res = append(res, reactionFromModel(m))
	}
	return res, nil
}

// ListReactionsByActor returns one actor's reactions of a given type/entity.
func (s *GormStore) ListReactionsByActor(actorID string, reactionType domain.ReactionType, entityType domain.EntityType) ([]domain.Reaction, error) {
	var models []ReactionModel
	if err := s.db.Where("actor_id = ? AND reaction_type = ? AND entity_type = ?",
		actorID, string(reactionType), string(entityType)).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Reaction, 0, len(models))
	for _, m := range models {
		res = append(res, reactionFromModel(m))
	}
	return res, nil
}

// CountHelpedByAuthors returns, per author, how many helped reactions that
// author's answers have received. Authors with zero are omitted.
func (s *GormStore) CountHelpedByAuthors(authorIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}
	type row struct {
		AuthorID string
		Total    int
	}
	var rows []row
	if err := s.db.Model(&ReactionModel{}).
		Select("answer_models.author_id AS author_id, COUNT(*) AS total").
		Joins("JOIN answer_models ON answer_models.id = reaction_models.entity_id").
		Where("reaction_models.entity_type = ? AND reaction_models.reaction_type = ?",
			string(domain.EntityAnswer), string(domain.ReactionHelped)).
		Where("answer_models.author_id IN ?", authorIDs).
		Group("answer_models.author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.AuthorID] = r.Total
	}
	return counts, nil
}

// CountSavesOnAuthorAnswers counts saved reactions across all of one
// author's answers.
func (s *GormStore) CountSavesOnAuthorAnswers(authorID string) (int, error) {
	var count int64
	if err := s.db.Model(&ReactionModel{}).
		Joins("JOIN answer_models ON answer_models.id = reaction_models.entity_id").
		Where("reaction_models.entity_type = ? AND reaction_models.reaction_type = ?",
			string(domain.EntityAnswer), string(domain.ReactionSaved)).
		Where("answer_models.author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// CreateCardWithSources inserts the card with its source rows and moves the
// question OPEN -> COMPILING_SUMMARY in one transaction. The status move is
// conditional on the question still being OPEN; a question that already
// left OPEN keeps its status and the card is created anyway, so repeated
// generation yields additional drafts rather than an error.
func (s *GormStore) CreateCardWithSources(card domain.Card, questionID string, answerIDs []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&QuestionModel{}).
			Where("id = ? AND status = ?", questionID, string(domain.QuestionOpen)).
			Update("status", string(domain.QuestionCompiling))
		if res.Error != nil {
			return res.Error
		}
		model := cardToModel(card)
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		for _, answerID := range answerIDs {
			source := CardSourceModel{
				ID:       card.ID + ":" + answerID,
				CardID:   card.ID,
				AnswerID: answerID,
			}
			if err := tx.Create(&source).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetCard retrieves a card.
func (s *GormStore) GetCard(id string) (domain.Card, bool, error) {
	var model CardModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Card{}, false, nil
		}
		return domain.Card{}, false, err
	}
	return cardFromModel(model), true, nil
}

// UpdateCard replaces the mutable fields of an existing card.
func (s *GormStore) UpdateCard(card domain.Card) error {
	model := cardToModel(card)
	return s.db.Model(&CardModel{}).Where("id = ?", card.ID).Updates(map[string]any{
		"title":           model.Title,
		"summary":         model.Summary,
		"recommendations": model.Recommendations,
		"risks":           model.Risks,
		"fit_for":         model.FitFor,
		"status":          model.Status,
		"updated_at":      model.UpdatedAt,
	}).Error
}

// ListCards returns cards matching the filter, most recently updated first.
func (s *GormStore) ListCards(filter CardFilter) ([]domain.Card, error) {
	tx := s.db.Order("updated_at DESC")
	if filter.CityID != "" {
		tx = tx.Where("city_id = ?", filter.CityID)
	}
	if filter.TopicID != "" {
		tx = tx.Where("topic_id = ?", filter.TopicID)
	}
	if filter.BudgetTier != "" {
		tx = tx.Where("budget_tier = ?", string(filter.BudgetTier))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if len(filter.Requirements) > 0 {
		raw, err := json.Marshal(filter.Requirements)
		if err != nil {
			return nil, err
		}
		tx = tx.Where("requirements @> ?::jsonb", string(raw))
	}
	var models []CardModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Card, 0, len(models))
	for _, m := range models {
		res = append(res, cardFromModel(m))
	}
	return res, nil
}

// ListCardSources returns a card's provenance rows.
func (s *GormStore) ListCardSources(cardID string) ([]domain.CardSource, error) {
	var models []CardSourceModel
	if err := s.db.Where("card_id = ?", cardID).Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.CardSource, 0, len(models))
	for _, m := range models {
		res = append(res, domain.CardSource{ID: m.ID, CardID: m.CardID, AnswerID: m.AnswerID})
	}
	return res, nil
}

// CountCardSourcesByAuthor counts how many card sources cite the author's
// answers.
func (s *GormStore) CountCardSourcesByAuthor(authorID string) (int, error) {
	var count int64
	if err := s.db.Model(&CardSourceModel{}).
		Joins("JOIN answer_models ON answer_models.id = card_source_models.answer_id").
		Where("answer_models.author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// SaveReport stores or updates a moderation report.
func (s *GormStore) SaveReport(r domain.Report) error {
	model := reportToModel(r)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&model).Error
}

// GetReport retrieves a report.
func (s *GormStore) GetReport(id string) (domain.Report, bool, error) {
	var model ReportModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Report{}, false, nil
		}
		return domain.Report{}, false, err
	}
	return reportFromModel(model), true, nil
}

// ListReports returns all reports, newest first.
func (s *GormStore) ListReports() ([]domain.Report, error) {
	var models []ReportModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Report, 0, len(models))
	for _, m := range models {
		res = append(res, reportFromModel(m))
	}
	return res, nil
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:        u.ID,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:        m.ID,
		Email:     m.Email,
		IsAdmin:   m.IsAdmin,
		CreatedAt: m.CreatedAt,
	}
}

func profileToModel(p domain.UserProfile) UserProfileModel {
	cities, _ := json.Marshal(p.CitiesOfExperience)
	return UserProfileModel{
		UserID:             p.UserID,
		Language:           p.Language,
		TravelStyle:        p.TravelStyle,
		BudgetTier:         string(p.BudgetTier),
		CitiesOfExperience: cities,
	}
}

func profileFromModel(m UserProfileModel) domain.UserProfile {
	var cities []string
	if len(m.CitiesOfExperience) > 0 {
		_ = json.Unmarshal(m.CitiesOfExperience, &cities)
	}
	return domain.UserProfile{
		UserID:             m.UserID,
		Language:           m.Language,
		TravelStyle:        m.TravelStyle,
		BudgetTier:         domain.BudgetTier(m.BudgetTier),
		CitiesOfExperience: cities,
	}
}

func questionToModel(q domain.Question) QuestionModel {
	requirements, _ := json.Marshal(q.Requirements)
	return QuestionModel{
		ID:           q.ID,
		CityID:       q.CityID,
		TopicID:      q.TopicID,
		AuthorID:     q.AuthorID,
		Duration:     q.Duration,
		BudgetTier:   string(q.BudgetTier),
		Requirements: requirements,
		Body:         q.Body,
		Status:       string(q.Status),
		CreatedAt:    q.CreatedAt,
	}
}

func questionFromModel(m QuestionModel) domain.Question {
	var requirements []string
	if len(m.Requirements) > 0 {
		_ = json.Unmarshal(m.Requirements, &requirements)
	}
	return domain.Question{
		ID:           m.ID,
		CityID:       m.CityID,
		TopicID:      m.TopicID,
		AuthorID:     m.AuthorID,
		Duration:     m.Duration,
		BudgetTier:   domain.BudgetTier(m.BudgetTier),
		Requirements: requirements,
		Body:         m.Body,
		Status:       domain.QuestionStatus(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

func answerToModel(a domain.Answer) AnswerModel {
	context, _ := json.Marshal(a.Context)
	return AnswerModel{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		AuthorID:   a.AuthorID,
		Body:       a.Body,
		Context:    context,
		MediaURL:   a.MediaURL,
		CreatedAt:  a.CreatedAt,
	}
}

func answerFromModel(m AnswerModel) domain.Answer {
	var context map[string]string
	if len(m.Context) > 0 {
		_ = json.Unmarshal(m.Context, &context)
	}
	return domain.Answer{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		AuthorID:   m.AuthorID,
		Body:       m.Body,
		Context:    context,
		MediaURL:   m.MediaURL,
		CreatedAt:  m.CreatedAt,
	}
}

func reactionToModel(r domain.Reaction) ReactionModel {
	return ReactionModel{
		ID:         r.ID,
		ActorID:    r.ActorID,
		EntityType: string(r.EntityType),
		EntityID:   r.EntityID,
		Type:       string(r.Type),
		CreatedAt:  r.CreatedAt,
	}
}

func reactionFromModel(m ReactionModel) domain.Reaction {
	return domain.Reaction{
		ID:         m.ID,
		ActorID:    m.ActorID,
		EntityType: domain.EntityType(m.EntityType),
		EntityID:   m.EntityID,
		Type:       domain.ReactionType(m.Type),
		CreatedAt:  m.CreatedAt,
	}
}

func cardToModel(c domain.Card) CardModel {
	requirements, _ := json.Marshal(c.Requirements)
	recommendations, _ := json.Marshal(c.Recommendations)
	risks, _ := json.Marshal(c.Risks)
	fitFor, _ := json.Marshal(c.FitFor)
	return CardModel{
		ID:              c.ID,
		Title:           c.Title,
		CityID:          c.CityID,
		TopicID:         c.TopicID,
		Duration:        c.Duration,
		BudgetTier:      string(c.BudgetTier),
		Requirements:    requirements,
		Summary:         c.Summary,
		Recommendations: recommendations,
		Risks:           risks,
		FitFor:          fitFor,
		Status:          string(c.Status),
		UpdatedAt:       c.UpdatedAt,
	}
}

func cardFromModel(m CardModel) domain.Card {
	var requirements, recommendations, risks, fitFor []string
	if len(m.Requirements) > 0 {
		_ = json.Unmarshal(m.Requirements, &requirements)
	}
	if len(m.Recommendations) > 0 {
		_ = json.Unmarshal(m.Recommendations, &recommendations)
	}
	if len(m.Risks) > 0 {
		_ = json.Unmarshal(m.Risks, &risks)
	}
	if len(m.FitFor) > 0 {
		_ = json.Unmarshal(m.FitFor, &fitFor)
	}
	return domain.Card{
		ID:              m.ID,
		Title:           m.Title,
		CityID:          m.CityID,
		TopicID:         m.TopicID,
		Duration:        m.Duration,
		BudgetTier:      domain.BudgetTier(m.BudgetTier),
		Requirements:    requirements,
		Summary:         m.Summary,
		Recommendations: recommendations,
		Risks:           risks,
		FitFor:          fitFor,
		Status:          domain.CardStatus(m.Status),
		UpdatedAt:       m.UpdatedAt,
	}
}

func reportToModel(r domain.Report) ReportModel {
	return ReportModel{
		ID:         r.ID,
		ReporterID: r.ReporterID,
		EntityType: string(r.EntityType),
		EntityID:   r.EntityID,
		Reason:     r.Reason,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

func reportFromModel(m ReportModel) domain.Report {
	return domain.Report{
		ID:         m.ID,
		ReporterID: m.ReporterID,
		EntityType: domain.EntityType(m.EntityType),
		EntityID:   m.EntityID,
		Reason:     m.Reason,
		Status:     domain.ReportStatus(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}
