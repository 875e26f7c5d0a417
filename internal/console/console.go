// Package console は予約サービスを対話形式のメニューで操作するフロントエンド
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/loulwahalabdely/FC723-Project1/internal/application"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/logger"
)

const (
	menuTitle  = "==== Apache Airlines ===="
	exitOption = "6"
	farewell   = "Thank you for flying with Apache Airlines!"
)

// Service はコンソールが利用する予約サービスの操作
type Service interface {
	CheckAvailability(ctx context.Context, raw string) (*application.AvailabilityResult, error)
	BookSeat(ctx context.Context, raw string, in application.PassengerInput) (*booking.Booking, error)
	FreeSeat(ctx context.Context, raw, lastName string) (seat.ID, error)
	SelectMeal(ctx context.Context, raw, choice string) (*application.MealSelection, error)
	ShowStatus(ctx context.Context, lastName string) (*application.StatusReport, error)
}

// Console はメニューの入出力を扱う
type Console struct {
	service Service
	in      *bufio.Scanner
	out     io.Writer
}

// New は Console を作成する
func New(service Service, in io.Reader, out io.Writer) *Console {
	return &Console{
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run は終了が選ばれるか入力が尽きるまでメニューを繰り返す
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.showMenu()
		action, err := c.prompt("Enter option (1-6): ")
		if err != nil {
			return ignoreEOF(err)
		}
		action = strings.TrimSpace(action)
		if action == exitOption {
			c.println(farewell)
			return nil
		}

		op, ok := parseOption(action)
		if !ok {
			c.println("Invalid option. Please choose 1-6.")
			continue
		}
		if err := c.dispatch(ctx, op); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if !c.reportFailure(err) {
				return err
			}
		}
	}
}

func (c *Console) dispatch(ctx context.Context, op application.Operation) error {
	switch op {
	case application.OpCheckAvailability:
		return c.checkAvailability(ctx)
	case application.OpBookSeat:
		return c.bookSeat(ctx)
	case application.OpFreeSeat:
		return c.freeSeat(ctx)
	case application.OpShowStatus:
		return c.showStatus(ctx)
	case application.OpSelectMeal:
		return c.selectMeal(ctx)
	}
	return fmt.Errorf("未対応の操作: %d", op)
}

func (c *Console) showMenu() {
	c.println("\n" + menuTitle)
	for _, op := range application.Operations() {
		c.printf("%d. %s\n", op, op.Title())
	}
	c.printf("%s. Exit System\n", exitOption)
}

func (c *Console) checkAvailability(ctx context.Context) error {
	raw, err := c.prompt("\nEnter seat to check (e.g., 3A): ")
	if err != nil {
		return err
	}
	result, err := c.service.CheckAvailability(ctx, raw)
	if err != nil {
		if errors.Is(err, seat.ErrInvalidFormat) {
			c.println("Invalid format. Use format like 1A or 80F.")
			return nil
		}
		return err
	}
	c.printf("Seat %s: %s\n", result.Seat, result.Status.Label())
	return nil
}

func (c *Console) bookSeat(ctx context.Context) error {
	for {
		raw, err := c.prompt("\nEnter seat to reserve (e.g., 5C): ")
		if err != nil {
			return err
		}
		result, err := c.service.CheckAvailability(ctx, raw)
		if err != nil {
			if errors.Is(err, seat.ErrInvalidFormat) {
				c.println("Invalid seat code.")
				return nil
			}
			return err
		}
		switch result.Status {
		case application.StatusStorageArea:
			c.println("Cannot book storage seat.")
			continue
		case application.StatusBooked:
			c.println("Seat already booked.")
			continue
		}

		in, err := c.readPassenger()
		if err != nil {
			return err
		}
		b, err := c.service.BookSeat(ctx, result.Seat.String(), in)
		switch {
		case err == nil:
			c.printf("Successfully reserved seat %s!\n", b.Seat)
			c.printf("Booking reference: %s\n", b.Reference)
			return nil
		case errors.Is(err, booking.ErrAlreadyBooked):
			// 入力中に他の利用者が予約した
			c.println("Seat already booked.")
			continue
		case errors.Is(err, application.ErrSeatBusy):
			c.println(seatBusyMessage)
			continue
		case errors.Is(err, booking.ErrPassengerDetailsRequired):
			c.println("First name, last name and passport number are required.")
			return nil
		default:
			return err
		}
	}
}

func (c *Console) readPassenger() (application.PassengerInput, error) {
	var in application.PassengerInput
	var err error
	if in.FirstName, err = c.prompt("First name: "); err != nil {
		return in, err
	}
	if in.LastName, err = c.prompt("Last name: "); err != nil {
		return in, err
	}
	if in.PassportID, err = c.prompt("Passport number: "); err != nil {
		return in, err
	}
	return in, nil
}

func (c *Console) freeSeat(ctx context.Context) error {
	for {
		raw, err := c.prompt("\nEnter seat to free (e.g., 15B): ")
		if err != nil {
			return err
		}
		if _, err := seat.Parse(raw); err != nil {
			c.println("Invalid seat code.")
			return nil
		}
		lastName, err := c.prompt("Enter last name on booking: ")
		if err != nil {
			return err
		}

		id, err := c.service.FreeSeat(ctx, raw, lastName)
		switch {
		case err == nil:
			c.printf("Released seat %s and cleared meal preference.\n", id)
			return nil
		case errors.Is(err, booking.ErrNoMatchingBooking):
			c.println("No matching booking found.")
			continue
		default:
			return err
		}
	}
}

func (c *Console) showStatus(ctx context.Context) error {
	lastName, err := c.prompt("\nEnter last name to list bookings (press Enter to skip): ")
	if err != nil {
		return err
	}
	report, err := c.service.ShowStatus(ctx, lastName)
	if err != nil {
		return err
	}

	c.printf("%s", report.SeatMap)
	if report.LastName == "" {
		return nil
	}
	if report.NoBookingsForName {
		c.printf("\nNo bookings found for %s.\n", report.LastName)
		return nil
	}
	c.printf("\nBookings for %s:\n", report.LastName)
	for _, b := range report.Bookings {
		c.printf("  %-4s %-8s %s (%s)\n", b.Seat, b.Reference, b.FullName(), b.Meal.Label())
	}
	return nil
}

func (c *Console) selectMeal(ctx context.Context) error {
	for {
		raw, err := c.prompt("\nEnter your reserved seat number (e.g., 15F): ")
		if err != nil {
			return err
		}
		result, err := c.service.CheckAvailability(ctx, raw)
		if err != nil {
			if errors.Is(err, seat.ErrInvalidFormat) {
				c.println("Invalid seat format! Use format like 1A or 80F")
				continue
			}
			return err
		}
		if result.Status != application.StatusBooked {
			c.println("Seat not reserved. Please book first.")
			return nil
		}

		c.println("\nMeal Selection Menu")
		for i, m := range booking.SelectableMeals {
			c.printf("%d. %s\n", i+1, strings.TrimSuffix(m.Label(), " Meal"))
		}
		choice, err := c.prompt("Choose meal (1-4) or 'X' to cancel: ")
		if err != nil {
			return err
		}

		sel, err := c.service.SelectMeal(ctx, result.Seat.String(), choice)
		switch {
		case err == nil && sel.Cancelled:
			c.println("Meal selection cancelled.")
			return nil
		case err == nil:
			c.printf("%s confirmed for seat %s\n", sel.Meal.Label(), sel.Seat)
			return nil
		case errors.Is(err, booking.ErrInvalidMealChoice):
			c.println("Invalid choice. Please select 1-4")
			continue
		case errors.Is(err, booking.ErrSeatNotReserved):
			c.println("Seat not reserved. Please book first.")
			return nil
		default:
			return err
		}
	}
}

const seatBusyMessage = "Seat is being updated by another request. Please try again."

// reportFailure はストア障害などを表示して操作だけを中断する
// 表示できないエラーの場合は false を返す
func (c *Console) reportFailure(err error) bool {
	switch {
	case errors.Is(err, application.ErrSeatBusy):
		c.println(seatBusyMessage)
		return true
	case errors.Is(err, booking.ErrStorageUnavailable):
		logger.Error("予約ストアが利用できません", zap.Error(err))
		c.println("Booking system is temporarily unavailable. Please try again later.")
		return true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		logger.Error("操作に失敗", zap.Error(err))
		c.println("Something went wrong. Please try again.")
		return true
	}
}

func (c *Console) prompt(text string) (string, error) {
	c.printf("%s", text)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("入力の読み取りに失敗: %w", err)
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func parseOption(s string) (application.Operation, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	op := application.Operation(s[0] - '0')
	return op, op.IsValid()
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
