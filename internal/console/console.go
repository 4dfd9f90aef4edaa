// Package console is the interactive front end: it asks for a directory,
// reports what was loaded and answers search queries until the stop token.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Damilavkin/price-list/internal/core"
)

// Searcher is the part of core.Service the console queries.
type Searcher interface {
	Search(ctx context.Context, text string) []core.ProductRecord
	Width() core.DisplayWidth
}

// Console reads lines from in and writes prompts and tables to out.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// readLine prompts and returns the next input line. io.EOF means input ended.
func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

// PromptDirectory asks for the price-list directory, falling back to def on
// an empty answer or closed input.
func (c *Console) PromptDirectory(def string) (string, error) {
	line, err := c.readLine(fmt.Sprintf("Введите путь к директории с прайс-листами (по умолчанию %s): ", def))
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
		return def, nil
	}
	if err != nil {
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return def, nil
	}
	return line, nil
}

// PrintLoad lists the discovered files and any that were skipped.
func (c *Console) PrintLoad(res *core.LoadResult) {
	if len(res.Files) == 0 {
		fmt.Fprintln(c.out, "Не найдено файлов с прайс-листами.")
		return
	}

	fmt.Fprintln(c.out, "Найденные файлы с прайс-листами:")
	for _, f := range res.Files {
		fmt.Fprintf(c.out, " - %s\n", f.Path)
	}
	for _, f := range res.Skipped() {
		fmt.Fprintf(c.out, "Ошибка при загрузке файла %s: %s\n", f.Path, core.FormatUserError(f.Err))
	}
}

// Run answers queries until the stop token, end of input or ctx is done.
func (c *Console) Run(ctx context.Context, s Searcher) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := c.readLine(`Введите текст для поиска или "exit" для выхода: `)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			break
		}
		if err != nil {
			return err
		}
		if core.IsStop(line) {
			break
		}

		results := s.Search(ctx, line)
		fmt.Fprintf(c.out, "Найдено %d позиций по запросу %q.\n", len(results), strings.ToLower(line))
		if len(results) == 0 {
			fmt.Fprintln(c.out, "Нет найденных позиций.")
			continue
		}
		WriteTable(c.out, results, s.Width())
	}

	fmt.Fprintln(c.out, "Завершение работы программы.")
	return nil
}

// WriteTable prints ranked results with the name column padded to width.
func WriteTable(w io.Writer, records []core.ProductRecord, width core.DisplayWidth) {
	n := int(width)
	fmt.Fprintf(w, "%-5s %-*s %-10s %-10s %-15s %-15s\n", "№", n, "Название", "Цена", "Фасовка", "Файл", "Цена за кг.")
	for i, r := range records {
		fmt.Fprintf(w, "%-5d %-*s %s %s %s %s\n", i+1, n, r.Name, r.PriceText(), r.WeightText(), r.SourceFile, r.UnitPriceText())
	}
}
