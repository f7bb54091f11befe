package domain

// MaxPhotoBytes — максимальный размер загружаемого изображения.
const MaxPhotoBytes = 5 << 20

// allowedPhotoTypes — разрешённые типы содержимого для фотографий
// товаров и профилей.
var allowedPhotoTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// ValidatePhoto проверяет тип содержимого и размер изображения перед
// сохранением.
func ValidatePhoto(contentType string, size int64) error {
	if size <= 0 {
		return ErrPhotoEmpty
	}
	if size > MaxPhotoBytes {
		return ErrPhotoTooLarge
	}
	if _, ok := allowedPhotoTypes[contentType]; !ok {
		return ErrPhotoUnsupportedType
	}
	return nil
}
