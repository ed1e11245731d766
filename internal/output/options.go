package output

// Options tune both writers.
type Options struct {
	Title    string // заголовок HTML-страницы
	Source   string // имя исходного файла для шапки
	Language string
	Extended bool // добавить в CSV колонки kind,line,left,right
	CRLF     bool // CSV с \r\n вместо \n
}

func (o Options) title() string {
	if o.Title != "" {
		return o.Title
	}
	return "Hiatus highlights"
}
