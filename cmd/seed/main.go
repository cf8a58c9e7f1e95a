package main

import (
	"fmt"

	"clipstream/pkg/config"
	"clipstream/pkg/database"
	"clipstream/pkg/logger"
	"clipstream/pkg/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	users, err := seedUsers(db, log)
	if err != nil {
		return err
	}

	videos, err := seedVideos(db, users, log)
	if err != nil {
		return err
	}

	if err := seedSocial(db, users, videos, log); err != nil {
		return err
	}

	return seedCommerce(db, users, log)
}

func seedUsers(db *gorm.DB, log *logger.Logger) ([]models.User, error) {
	seedData := []struct {
		fullname string
		email    string
		username string
	}{
		{"Alice Carter", "alice@test.com", "alice"},
		{"Bob Nguyen", "bob@test.com", "bob"},
		{"Charlie Fox", "charlie@test.com", "charlie"},
		{"Diana Reyes", "diana@test.com", "diana"},
		{"Eve Okafor", "eve@test.com", "eve"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(seedData))
	for _, data := range seedData {
		var user models.User
		err := db.Where("email = ?", data.email).First(&user).Error
		if err == nil {
			users = append(users, user)
			continue
		}

		user = models.User{
			Fullname:  data.fullname,
			Email:     data.email,
			Username:  data.username,
			Password:  string(hash),
			Role:      models.RoleCreator,
			AvatarURL: fmt.Sprintf("https://cdn.clipstream.dev/avatars/%s.png", data.username),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		log.Info("Seeded user %s (%s)", user.Username, user.ID)
		users = append(users, user)
	}
	return users, nil
}

func seedVideos(db *gorm.DB, users []models.User, log *logger.Logger) ([]models.Video, error) {
	seedData := []struct {
		owner       int
		title       string
		description string
		duration    float64
	}{
		{0, "City timelapse", "A day over the skyline in thirty seconds", 30},
		{0, "Coffee brewing basics", "Pour-over from start to finish", 412},
		{1, "Trail running in the rain", "Muddy singletrack, no regrets", 725},
		{2, "Synth jam #4", "Late night pads and arpeggios", 264},
		{3, "Sourdough troubleshooting", "Why your crumb is dense and how to fix it", 981},
	}

	videos := make([]models.Video, 0, len(seedData))
	for _, data := range seedData {
		owner := users[data.owner]

		var video models.Video
		err := db.Where("owner_id = ? AND title = ?", owner.ID, data.title).First(&video).Error
		if err == nil {
			videos = append(videos, video)
			continue
		}

		videoID := uuid.New().String()
		video = models.Video{
			ID:           videoID,
			OwnerID:      owner.ID,
			Title:        data.title,
			Description:  data.description,
			Duration:     data.duration,
			VideoURL:     fmt.Sprintf("https://cdn.clipstream.dev/videos/%s/%s.mp4", owner.Username, videoID),
			ThumbnailURL: fmt.Sprintf("https://cdn.clipstream.dev/thumbnails/%s.jpg", owner.Username),
			IsPublished:  true,
		}
		if err := db.Create(&video).Error; err != nil {
			return nil, err
		}
		log.Info("Seeded video %q by %s", video.Title, owner.Username)
		videos = append(videos, video)
	}
	return videos, nil
}

func seedSocial(db *gorm.DB, users []models.User, videos []models.Video, log *logger.Logger) error {
	comments := []models.Comment{
		{VideoID: videos[0].ID, AuthorID: users[1].ID, Content: "The golden hour section is stunning"},
		{VideoID: videos[0].ID, AuthorID: users[2].ID, Content: "What camera is this?"},
		{VideoID: videos[2].ID, AuthorID: users[0].ID, Content: "That descent looked sketchy"},
	}
	for i := range comments {
		var count int64
		db.Model(&models.Comment{}).
			Where("video_id = ? AND author_id = ?", comments[i].VideoID, comments[i].AuthorID).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&comments[i]).Error; err != nil {
			return err
		}
	}

	tweets := []models.Tweet{
		{OwnerID: users[0].ID, Content: "New timelapse dropping this week"},
		{OwnerID: users[3].ID, Content: "Baking stream on saturday, bring questions"},
	}
	for i := range tweets {
		var count int64
		db.Model(&models.Tweet{}).Where("owner_id = ?", tweets[i].OwnerID).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&tweets[i]).Error; err != nil {
			return err
		}
	}

	likes := []models.Like{
		{UserID: users[1].ID, TargetKind: models.LikeTargetVideo, TargetID: videos[0].ID},
		{UserID: users[2].ID, TargetKind: models.LikeTargetVideo, TargetID: videos[0].ID},
		{UserID: users[0].ID, TargetKind: models.LikeTargetVideo, TargetID: videos[2].ID},
	}
	for i := range likes {
		var count int64
		db.Model(&models.Like{}).
			Where("user_id = ? AND target_kind = ? AND target_id = ?",
				likes[i].UserID, likes[i].TargetKind, likes[i].TargetID).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&likes[i]).Error; err != nil {
			return err
		}
	}

	subscriptions := []models.Subscription{
		{SubscriberID: users[1].ID, ChannelID: users[0].ID},
		{SubscriberID: users[2].ID, ChannelID: users[0].ID},
		{SubscriberID: users[0].ID, ChannelID: users[3].ID},
	}
	for i := range subscriptions {
		var count int64
		db.Model(&models.Subscription{}).
			Where("subscriber_id = ? AND channel_id = ?",
				subscriptions[i].SubscriberID, subscriptions[i].ChannelID).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&subscriptions[i]).Error; err != nil {
			return err
		}
	}

	watched := []models.WatchHistoryEntry{
		{UserID: users[1].ID, VideoID: videos[0].ID},
		{UserID: users[1].ID, VideoID: videos[2].ID},
	}
	for i := range watched {
		var count int64
		db.Model(&models.WatchHistoryEntry{}).
			Where("user_id = ? AND video_id = ?", watched[i].UserID, watched[i].VideoID).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&watched[i]).Error; err != nil {
			return err
		}
	}

	log.Info("Seeded social graph")
	return nil
}

func seedCommerce(db *gorm.DB, users []models.User, log *logger.Logger) error {
	categoryNames := []string{"Cameras", "Audio", "Merch"}
	categories := make([]models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		var category models.Category
		if err := db.Where("name = ?", name).First(&category).Error; err != nil {
			category = models.Category{Name: name}
			if err := db.Create(&category).Error; err != nil {
				return err
			}
		}
		categories = append(categories, category)
	}

	productData := []struct {
		category int
		owner    int
		name     string
		price    float64
		stock    int
	}{
		{0, 0, "Pocket gimbal", 129.00, 40},
		{1, 2, "USB condenser mic", 89.50, 25},
		{2, 0, "Channel logo tee", 24.99, 200},
	}

	products := make([]models.Product, 0, len(productData))
	for _, data := range productData {
		var product models.Product
		err := db.Where("name = ?", data.name).First(&product).Error
		if err == nil {
			products = append(products, product)
			continue
		}

		product = models.Product{
			Name:        data.name,
			Description: fmt.Sprintf("%s sold by %s", data.name, users[data.owner].Username),
			Price:       data.price,
			Stock:       data.stock,
			ImageURL:    "https://cdn.clipstream.dev/products/placeholder.png",
			CategoryID:  categories[data.category].ID,
			OwnerID:     users[data.owner].ID,
		}
		if err := db.Create(&product).Error; err != nil {
			return err
		}
		products = append(products, product)
	}

	var reviewCount int64
	db.Model(&models.Review{}).Where("product_id = ?", products[0].ID).Count(&reviewCount)
	if reviewCount == 0 {
		review := models.Review{
			ProductID:  products[0].ID,
			CustomerID: users[1].ID,
			Name:       users[1].Fullname,
			Rating:     5,
			Comment:    "Smooth footage right out of the box",
		}
		if err := db.Create(&review).Error; err != nil {
			return err
		}
	}

	var orderCount int64
	db.Model(&models.Order{}).Where("customer_id = ?", users[1].ID).Count(&orderCount)
	if orderCount == 0 {
		order := models.Order{
			CustomerID:         users[1].ID,
			OrderPrice:         products[0].Price + 2*products[2].Price,
			Status:             models.OrderPending,
			ShippingAddress:    "12 Harbor Lane",
			ShippingCity:       "Portsmouth",
			ShippingPostalCode: "PO1 2AB",
			ShippingCountry:    "United Kingdom",
			Items: []models.OrderItem{
				{ProductID: products[0].ID, Quantity: 1},
				{ProductID: products[2].ID, Quantity: 2},
			},
		}
		if err := db.Create(&order).Error; err != nil {
			return err
		}
	}

	log.Info("Seeded commerce catalog")
	return nil
}
