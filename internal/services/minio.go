package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"kplat_back_end/internal/database"
)

const imageBucket = "kplat-images"

// Génère une URL signée avec expiration pour un objet du bucket images
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	reqParams := make(url.Values)

	// Nettoie l'URL complète pour ne garder que le chemin relatif au bucket
	prefix := fmt.Sprintf("http://%s/%s/", os.Getenv("MINIO_ENDPOINT"), imageBucket)
	key := strings.TrimPrefix(objectPath, prefix)

	presignedURL, err := database.MinIO.PresignedGetObject(
		ctx,
		imageBucket,
		key,
		duration,
		reqParams,
	)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}

// Résout une référence d'image en URL signée, renvoie "" si indisponible.
// Les cartes de menu restent affichables même sans MinIO.
func ResolveImage(ctx context.Context, imageRef string) string {
	if imageRef == "" {
		return ""
	}
	signed, err := GenerateSignedURL(ctx, imageRef, 15*time.Minute)
	if err != nil {
		log.Println("⚠️ Impossible de signer l'image", imageRef, ":", err)
		return ""
	}
	return signed
}
