package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"mingl_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileService owns profile CRUD. Every write broadcasts a profile-change
// notification so connected clients can refetch affected candidate lists.
type ProfileService struct {
	Dynamo DynamoAPI
	Notify Notifier
}

// AddProfile creates or replaces a user profile.
func (ps *ProfileService) AddProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("profile requires userId")
	}
	if err := ps.Dynamo.PutItem(ctx, models.ProfilesTable, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile %s: %w", profile.UserID, err)
	}
	ps.notifyChanged(profile.UserID)
	return &profile, nil
}

// GetProfile retrieves a user profile by ID
func (ps *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := ps.Dynamo.GetItem(ctx, models.ProfilesTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", userID, err)
	}
	if item == nil {
		return nil, ErrProfileNotFound
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", userID, err)
	}
	return &profile, nil
}

// UpdateLocation sets the profile's coordinates and city. Location changes
// invalidate distance-based candidate eligibility, so this always notifies.
func (ps *ProfileService) UpdateLocation(ctx context.Context, userID string, latitude, longitude float64, city string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	values := map[string]types.AttributeValue{
		":lat":  &types.AttributeValueMemberN{Value: strconv.FormatFloat(latitude, 'f', -1, 64)},
		":lon":  &types.AttributeValueMemberN{Value: strconv.FormatFloat(longitude, 'f', -1, 64)},
		":city": &types.AttributeValueMemberS{Value: city},
	}
	_, err := ps.Dynamo.UpdateItem(ctx, models.ProfilesTable,
		"SET latitude = :lat, longitude = :lon, city = :city", "", key, values)
	if err != nil {
		return fmt.Errorf("failed to update location for %s: %w", userID, err)
	}
	ps.notifyChanged(userID)
	return nil
}

// DeleteProfile removes a user profile.
func (ps *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	if err := ps.Dynamo.DeleteItem(ctx, models.ProfilesTable, key); err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", userID, err)
	}
	ps.notifyChanged(userID)
	return nil
}

func (ps *ProfileService) notifyChanged(userID string) {
	if ps.Notify == nil {
		return
	}
	ps.Notify.ProfileChanged(userID)
	log.Printf("📡 Broadcast profile change for %s", userID)
}
