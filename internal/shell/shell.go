// Package shell is the interactive terminal menu over the query service.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"booksim/internal/service"
	"booksim/internal/similarity"
)

const invalidInt = "Invalid input. Please enter a valid integer."

// errQuit ends the session: the user chose Exit or input ran out.
var errQuit = errors.New("quit")

type Shell struct {
	svc *service.QueryService
	in  *bufio.Scanner
	out io.Writer
}

func New(svc *service.QueryService, in io.Reader, out io.Writer) *Shell {
	return &Shell{svc: svc, in: bufio.NewScanner(in), out: out}
}

// Run shows the main menu until the user exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.println("\nMain Menu:")
		s.println("1. Get Book and User Details")
		s.println("2. Find Similar Users")
		s.println("3. Find Similar Books")
		s.println("4. Exit")

		choice, err := s.prompt("\nEnter your choice (1-4): ")
		if err != nil {
			return s.end(err)
		}

		switch choice {
		case "1":
			err = s.detailsMenu(ctx)
		case "2":
			err = s.usersMenu(ctx)
		case "3":
			err = s.booksMenu(ctx)
		case "4":
			s.println("Goodbye!")
			return nil
		default:
			s.println("Invalid choice. Please enter a number between 1 and 4.")
		}
		if err != nil {
			return s.end(err)
		}
	}
}

func (s *Shell) end(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (s *Shell) detailsMenu(ctx context.Context) error {
	for {
		s.println("\nGet Book and User Details:")
		s.println("1. Load Books")
		s.println("2. Load Users ID")
		s.println("3. Back to Main Menu")

		choice, err := s.prompt("\nEnter your choice (1-3): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			n, ok, err := s.promptInt("\nEnter the number of books you want to print: ")
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			for _, b := range s.svc.TopBooks(ctx, n) {
				s.printf("ISBN: %s, Title: %s, Author: %s, Year: %s\n", b.ISBN, b.Title, b.Author, b.Year)
			}
		case "2":
			n, ok, err := s.promptInt("\nEnter the number of user ID you want to print: ")
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			for _, u := range s.svc.TopUsers(ctx, n) {
				s.printf("User ID: %s, Ratings: %d\n", u.ID, u.RatingCount)
			}
		case "3":
			return nil
		default:
			s.println("Invalid choice. Please enter a number between 1 and 3.")
		}
	}
}

func (s *Shell) usersMenu(ctx context.Context) error {
	for {
		s.println("\nChoose a method to calculate similarity:")
		s.println("1. Pearson Correlation Coefficient")
		s.println("2. Manhattan Distance")
		s.println("3. Back to Main Menu")

		choice, err := s.prompt("\nEnter your choice (1-3): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1", "2":
			metric := similarity.MetricPearson
			if choice == "2" {
				metric = similarity.MetricManhattan
			}
			a, b, err := s.promptPair("\nEnter the first user: ", "\nEnter the second user: ")
			if err != nil {
				return err
			}
			res, err := s.svc.CompareUsers(ctx, service.CompareRequest{A: a, B: b, Metric: metric})
			s.printResult(res, err)
		case "3":
			return nil
		default:
			s.println("Invalid choice. Please enter a number between 1 and 3.")
		}
	}
}

func (s *Shell) booksMenu(ctx context.Context) error {
	for {
		s.println("\nChoose a method to calculate similarity:")
		s.println("1. Euclidean Distance")
		s.println("2. Cosine similarity")
		s.println("3. Minkowski Distance")
		s.println("4. Find N Similar Books")
		s.println("5. Back to Main Menu")

		choice, err := s.prompt("\nEnter your choice (1-5): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1", "2", "3":
			metric := map[string]string{
				"1": similarity.MetricEuclidean,
				"2": similarity.MetricCosine,
				"3": similarity.MetricMinkowski,
			}[choice]
			a, b, err := s.promptPair("\nEnter the first book: ", "\nEnter the second book: ")
			if err != nil {
				return err
			}
			res, err := s.svc.CompareBooks(ctx, service.CompareRequest{A: a, B: b, Metric: metric})
			s.printResult(res, err)
		case "4":
			if err := s.nearestBooks(ctx); err != nil {
				return err
			}
		case "5":
			return nil
		default:
			s.println("Invalid choice. Please enter a number between 1 and 5.")
		}
	}
}

func (s *Shell) nearestBooks(ctx context.Context) error {
	isbn, err := s.prompt("\nEnter the book: ")
	if err != nil {
		return err
	}
	n, ok, err := s.promptInt("\nEnter the number of similar books: ")
	if err != nil || !ok {
		return err
	}

	ref := s.svc.Book(ctx, isbn)
	if ref == nil {
		s.printf("\nError: book %q not found\n", isbn)
		return nil
	}
	doc, err := s.svc.SimilarBooks(ctx, service.SimilarRequest{ID: isbn, N: n, Metric: similarity.MetricEuclidean})
	if err != nil {
		s.printf("\nError: %v\n", err)
		return nil
	}

	s.println("BOOK DETAILS:")
	s.println("--------------")
	s.printBook(ref.ISBN, ref.Title, ref.Author, ref.Year)
	s.println("")

	s.println("SIMILAR BOOKS:")
	s.println("--------------")
	for _, nb := range doc.Neighbors {
		var title, author, year string
		if b := s.svc.Book(ctx, nb.ID); b != nil {
			title, author, year = b.Title, b.Author, b.Year
		}
		s.printBook(nb.ID, title, author, year)
		s.printf("Euclidean Distance: %s\n\n", formatScore(nb.Score))
	}
	return nil
}

func (s *Shell) printBook(isbn, title, author, year string) {
	s.printf("Book ID: %s\nTitle: %s\nAuthor: %s\nYear: %s\n", isbn, title, author, year)
}

func (s *Shell) printResult(res similarity.Result, err error) {
	if err != nil {
		s.printf("\nError: %v\n", err)
		return
	}
	s.printf("\nSimilarity: %s\n", formatScore(res.Score))
	s.printf("Explanation: %s\n", res.Explanation)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *Shell) prompt(msg string) (string, error) {
	s.printf("%s", msg)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) promptPair(first, second string) (string, string, error) {
	a, err := s.prompt(first)
	if err != nil {
		return "", "", err
	}
	b, err := s.prompt(second)
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

// promptInt reports ok=false after printing the invalid input message.
func (s *Shell) promptInt(msg string) (int, bool, error) {
	v, err := s.prompt(msg)
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		s.println(invalidInt)
		return 0, false, nil
	}
	return n, true, nil
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
