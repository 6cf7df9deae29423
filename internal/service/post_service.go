package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mddanishyusuf/listyouridea/internal/config"
	"github.com/mddanishyusuf/listyouridea/internal/models"
	"github.com/mddanishyusuf/listyouridea/internal/repository"
	"github.com/mddanishyusuf/listyouridea/internal/storage"
)

const maxDescriptionWords = 100

type CreatePostRequest struct {
	Title          string   `json:"productTitle" validate:"required,max=200"`
	Description    string   `json:"productDescription" validate:"required,max=500"`
	LogoURL        string   `json:"productImage" validate:"required"`
	FeaturedImages []string `json:"featuredImages" validate:"required,min=1,max=4"`
	Category       string   `json:"category" validate:"required"`
	ProductURL     string   `json:"productUrl" validate:"omitempty,url"`
}

type PostService interface {
	CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*models.Post, error)
	GetMyPosts(ctx context.Context, authorID, status string) ([]models.Post, error)
	GetPublicFeed(ctx context.Context, category string, limit, page int) ([]models.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (bool, int, error)
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	cfg       *config.Config
}

func NewPostService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   storage,
		cfg:       cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if title == "" {
		return nil, fmt.Errorf("product title is required: %w", models.ErrInvalidInput)
	}
	if description == "" {
		return nil, fmt.Errorf("product description is required: %w", models.ErrInvalidInput)
	}
	if len(strings.Fields(description)) > maxDescriptionWords {
		return nil, fmt.Errorf("product description must be %d words or less: %w", maxDescriptionWords, models.ErrInvalidInput)
	}
	if len(req.FeaturedImages) < 1 || len(req.FeaturedImages) > 4 {
		return nil, fmt.Errorf("between 1 and 4 featured images required: %w", models.ErrInvalidInput)
	}

	post := &models.Post{
		AuthorID:    authorID,
		Title:       title,
		Description: description,
		LogoURL:     req.LogoURL,
		Category:    req.Category,
		ProductURL:  req.ProductURL,
		Status:      models.StatusDraft,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	for i, imageURL := range req.FeaturedImages {
		image := models.Image{
			PostID:   post.PostID,
			ImageURL: imageURL,
			Position: i,
		}
		if err := p.imageRepo.Create(ctx, &image); err != nil {
			return nil, err
		}
		post.Images = append(post.Images, image)
	}

	return post, nil
}

func (p *postService) GetMyPosts(ctx context.Context, authorID, status string) ([]models.Post, error) {
	posts, err := p.postRepo.GetByAuthorID(ctx, authorID, status)
	if err != nil {
		return nil, err
	}

	return p.attachImages(ctx, posts)
}

func (p *postService) GetPublicFeed(ctx context.Context, category string, limit, page int) ([]models.Post, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}

	posts, err := p.postRepo.GetPublished(ctx, category, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return p.attachImages(ctx, posts)
}

func (p *postService) attachImages(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	for i := range posts {
		images, err := p.imageRepo.GetByPostID(ctx, posts[i].PostID)
		if err != nil {
			return nil, err
		}
		posts[i].Images = images
	}
	return posts, nil
}

func (p *postService) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	if _, err := p.postRepo.GetByID(ctx, postID); err != nil {
		return false, 0, err
	}

	return p.postRepo.ToggleLike(ctx, postID, userID)
}
