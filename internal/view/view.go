// Package view вычисляет модели отображения для панелей дашборда.
// Каждая панель принимает неизменяемые props и возвращает описание того,
// что нарисовать; стили накладывает пакет ui.
package view

import (
	"github.com/skalibog/benzboard/internal/format"
)

// Tag текст с классом цвета
type Tag struct {
	Text  string
	Class string
}

// CarTag метка машины: упрощенное имя, цвет по полному имени
func CarTag(car string) Tag {
	return Tag{Text: format.SimplifyCarName(car), Class: format.CarColorClass(car)}
}

// CarTags метки для списка машин
func CarTags(cars []string) []Tag {
	tags := make([]Tag, 0, len(cars))
	for _, car := range cars {
		tags = append(tags, CarTag(car))
	}
	return tags
}
